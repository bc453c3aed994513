package profile

import (
	"context"
	"testing"
	"time"

	"authapi/internal/database"
	"authapi/internal/domain"
	"authapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*Service, *domain.User) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	user := &domain.User{
		Email:        "a@b.com",
		PasswordHash: "hashed",
		FirstName:    "Alice",
		LastName:     "Anderson",
	}
	require.NoError(t, users.Create(context.Background(), user))

	return NewService(users), user
}

func TestGetCurrentUserStripsPasswordHash(t *testing.T) {
	svc, user := newFixture(t)

	got, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Empty(t, got.PasswordHash)
}

func TestGetCurrentUserNotFound(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.GetCurrentUser(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileMutableFields(t *testing.T) {
	svc, user := newFixture(t)

	got, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		FirstName:      "Alicia",
		PhoneNumber:    "+15550100001",
		DateOfBirth:    "1990-04-12",
		ProfilePicture: "https://cdn.example.com/alice.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", got.FirstName)
	assert.Equal(t, "Anderson", got.LastName)
	assert.Equal(t, "+15550100001", got.PhoneNumber)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), got.DateOfBirth.UTC())
	assert.Equal(t, "https://cdn.example.com/alice.png", got.ProfilePicture)
	assert.Empty(t, got.PasswordHash)
}

func TestUpdateProfileEmailStaysPut(t *testing.T) {
	svc, user := newFixture(t)

	got, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{LastName: "Brown"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "Brown", got.LastName)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.UpdateProfile(context.Background(), "no-such-id", UpdateProfileRequest{FirstName: "X"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
