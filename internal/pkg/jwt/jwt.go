package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification outcomes. Callers match these with errors.Is instead of
// inspecting library error strings.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

// Manager signs and verifies the access/refresh token pair. The two token
// kinds use distinct secrets: a leaked refresh-signing key must not allow
// forging access tokens, and vice versa.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *Manager) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	return m.generate(userID, email, m.accessSecret, m.accessTTL)
}

func (m *Manager) GenerateRefreshToken(userID, email string) (string, time.Time, error) {
	return m.generate(userID, email, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) generate(userID, email string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			// iat/exp have one-second resolution; the jti keeps tokens minted
			// for the same user within the same second distinct, which the
			// unique ledger index relies on.
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, m.accessSecret)
}

func (m *Manager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, m.refreshSecret)
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Decode extracts claims without verifying the signature or expiry. Used when
// revoking a token: the blacklist entry copies the token's own expiry claim
// even if the token is past it.
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwtlib.NewParser().ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, ErrInvalid
	}
	return claims, nil
}
