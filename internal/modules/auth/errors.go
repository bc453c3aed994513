package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrMissingToken       = errors.New("missing or malformed credential")
	ErrTokenBlacklisted   = errors.New("token revoked")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)
