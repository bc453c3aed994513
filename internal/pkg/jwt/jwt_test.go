package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret-for-tests", "refresh-secret-for-tests", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	m := newTestManager()

	token, expiresAt, err := m.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokensMintedInTheSameSecondDiffer(t *testing.T) {
	m := newTestManager()

	// iat/exp alone only have one-second resolution; the jti must keep
	// back-to-back mints for the same user distinct.
	first, _, err := m.GenerateRefreshToken("u1", "a@b.com")
	require.NoError(t, err)
	second, _, err := m.GenerateRefreshToken("u1", "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstClaims, err := m.VerifyRefreshToken(first)
	require.NoError(t, err)
	secondClaims, err := m.VerifyRefreshToken(second)
	require.NoError(t, err)
	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := newTestManager()

	access, _, err := m.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("u1", "a@b.com")
	require.NoError(t, err)

	// A token signed with one secret must not verify against the other.
	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, -time.Minute)

	token, _, err := m.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("completely-different", "also-different", 15*time.Minute, time.Hour)

	token, _, err := other.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeIgnoresExpiryAndSignature(t *testing.T) {
	m := NewManager("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, -time.Minute)

	token, expiresAt, err := m.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)

	claims, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, 2*time.Second)

	_, err = m.Decode("garbage")
	assert.ErrorIs(t, err, ErrInvalid)
}
