package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"authapi/internal/domain"
	"authapi/internal/modules/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthenticator struct {
	user *domain.User
	err  error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newProtectedRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(a))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      c.GetString("user_id"),
			"access_token": c.GetString("access_token"),
		})
	})
	return router
}

func TestAuthValidToken(t *testing.T) {
	router := newProtectedRouter(&stubAuthenticator{user: &domain.User{ID: "u1", Email: "a@b.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-access-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
	// The raw token is kept in context for logout.
	assert.Contains(t, w.Body.String(), "some-access-token")
}

func TestAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(&stubAuthenticator{user: &domain.User{ID: "u1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestAuthNonBearerHeader(t *testing.T) {
	router := newProtectedRouter(&stubAuthenticator{user: &domain.User{ID: "u1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestAuthErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"blacklisted", auth.ErrTokenBlacklisted, "TOKEN_REVOKED"},
		{"expired", auth.ErrTokenExpired, "TOKEN_EXPIRED"},
		{"invalid", auth.ErrInvalidToken, "INVALID_TOKEN"},
		{"user gone", auth.ErrUserNotFound, "USER_NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProtectedRouter(&stubAuthenticator{err: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer whatever")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestAuthStoreFailureIsInternal(t *testing.T) {
	router := newProtectedRouter(&stubAuthenticator{err: assert.AnError})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
