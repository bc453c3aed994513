package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"authapi/internal/domain"
	"authapi/internal/modules/auth"
	"authapi/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a presented access token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, runs it through the token lifecycle and
// stores the resolved user plus the raw token in the request context. The raw
// token is kept so logout can blacklist the exact credential that
// authenticated it. A missing or malformed Authorization header is reported
// separately from an invalid token value.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, "MISSING_TOKEN", "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, "MISSING_TOKEN", "Invalid Authorization header")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			abort(c, "MISSING_TOKEN", "Empty token")
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenBlacklisted):
				abort(c, "TOKEN_REVOKED", "Token has been revoked")
			case errors.Is(err, auth.ErrTokenExpired):
				abort(c, "TOKEN_EXPIRED", "Token has expired")
			case errors.Is(err, auth.ErrUserNotFound):
				abort(c, "USER_NOT_FOUND", "User no longer exists")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
				abort(c, "INVALID_TOKEN", "Token is invalid")
			default:
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed")
				c.Abort()
			}
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("access_token", token)

		c.Next()
	}
}

func abort(c *gin.Context, code, message string) {
	response.Error(c, http.StatusUnauthorized, code, message)
	c.Abort()
}
