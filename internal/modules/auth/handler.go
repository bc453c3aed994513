package auth

import (
	"errors"
	"net/http"

	"authapi/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
	}
}

// Register creates a new account and signs the user in.
// @Summary		Register a new user
// @Tags		Authentication
// @Param		request	body	RegisterRequest	true	"Registration fields"
// @Success		201	{object}	map[string]interface{}	"User created, token pair returned"
// @Failure		400	{object}	map[string]interface{}	"Validation error"
// @Failure		409	{object}	map[string]interface{}	"Email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrInvalidDateOfBirth):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date_of_birth must be YYYY-MM-DD")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": result.User,
		"tokens": TokenPairResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			ExpiresIn:    result.ExpiresIn,
		},
	})
}

// Login verifies credentials and issues a token pair.
// @Summary		Log in
// @Tags		Authentication
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success		200	{object}	map[string]interface{}	"Token pair"
// @Failure		401	{object}	map[string]interface{}	"Invalid credentials"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": result.User,
		"tokens": TokenPairResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			ExpiresIn:    result.ExpiresIn,
		},
	})
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// is not rotated.
// @Summary		Refresh the access token
// @Tags		Authentication
// @Param		request	body	RefreshRequest	true	"Refresh token"
// @Success		200	{object}	map[string]interface{}	"New access token"
// @Failure		401	{object}	map[string]interface{}	"Revoked, expired or unknown token"
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenBlacklisted):
			response.Error(c, http.StatusUnauthorized, "TOKEN_REVOKED", "Refresh token has been revoked")
		case errors.Is(err, ErrTokenExpired):
			response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token has expired")
		case errors.Is(err, ErrInvalidToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token is invalid")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to refresh token")
		}
		return
	}

	response.Success(c, http.StatusOK, RefreshResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout revokes the access token used to authenticate this call and,
// optionally, the supplied refresh token.
// @Summary		Log out
// @Tags		Authentication
// @Security	BearerAuth
// @Param		request	body	LogoutRequest	false	"Optional refresh token to revoke"
// @Success		200	{object}	map[string]interface{}	"Logged out"
// @Failure		401	{object}	map[string]interface{}	"Not authenticated"
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	accessToken := c.GetString("access_token")
	if userID == "" || accessToken == "" {
		response.Error(c, http.StatusUnauthorized, "MISSING_TOKEN", "Authentication required")
		return
	}

	// Body is optional; an empty or absent body means access-token-only logout.
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Logout(c.Request.Context(), accessToken, req.RefreshToken, userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}
