package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"authapi/internal/domain"
	"authapi/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type tokenManager interface {
	GenerateAccessToken(userID, email string) (string, time.Time, error)
	GenerateRefreshToken(userID, email string) (string, time.Time, error)
	VerifyAccessToken(token string) (*jwt.Claims, error)
	VerifyRefreshToken(token string) (*jwt.Claims, error)
	Decode(token string) (*jwt.Claims, error)
}

// Service is the sole authority for minting, validating and revoking the
// access/refresh token pair. Refresh tokens are reusable until they expire or
// are revoked; they are not rotated on refresh.
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	blacklist     BlacklistRepositoryInterface
	tokens        tokenManager
	bcryptCost    int
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type RefreshResult struct {
	AccessToken string
	ExpiresIn   int64
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	blacklist BlacklistRepositoryInterface,
	tokens tokenManager,
	bcryptCost int,
) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		blacklist:     blacklist,
		tokens:        tokens,
		bcryptCost:    bcryptCost,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		user.DateOfBirth = &dob
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// issue mints the token pair and records the refresh token in the ledger. If
// the ledger write fails no pair reaches the caller: the minted tokens carry
// no server-side state on their own, so discarding them is safe.
func (s *Service) issue(ctx context.Context, user *domain.User) (*LoginResult, error) {
	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := s.refreshTokens.Create(ctx, record); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    secondsUntil(accessExpiresAt),
	}, nil
}

// Authenticate admits or rejects a presented access token. The blacklist is
// consulted before signature verification: a revoked token is reported as
// revoked even when it would still verify.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	revoked, err := s.blacklist.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}

	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself stays in the ledger and remains usable until expiry or logout.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	revoked, err := s.blacklist.Exists(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}

	if _, err := s.refreshTokens.GetByToken(ctx, refreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			// The ledger row is stale; drop it so the sweep has less to do.
			if delErr := s.refreshTokens.DeleteByToken(ctx, refreshToken); delErr != nil {
				return nil, delErr
			}
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken: accessToken,
		ExpiresIn:   secondsUntil(accessExpiresAt),
	}, nil
}

// Logout blacklists the access token that authenticated the call and, when a
// refresh token owned by the caller is supplied, deletes its ledger row and
// blacklists it too. A refresh token that is unknown or owned by someone else
// is silently ignored: logout never reveals whether a foreign token exists.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken, callerUserID string) error {
	claims, err := s.tokens.Decode(accessToken)
	if err != nil || claims.ExpiresAt == nil {
		// Middleware already authenticated this exact token, so a failed
		// decode means something is broken server-side.
		return ErrInvalidToken
	}

	now := time.Now()
	if err := s.blacklist.Add(ctx, &domain.BlacklistedToken{
		Token:     accessToken,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	record, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if record.UserID != callerUserID {
		return nil
	}

	if err := s.refreshTokens.DeleteByToken(ctx, refreshToken); err != nil {
		return err
	}

	// Best effort: the delete above already neutralized the token. Attempt to
	// blacklist it as well; on failure, proceed anyway.
	refreshClaims, err := s.tokens.Decode(refreshToken)
	if err != nil || refreshClaims.ExpiresAt == nil {
		log.Printf("auth: skipping refresh blacklist for user_id=%s: undecodable token", callerUserID)
		return nil
	}
	if err := s.blacklist.Add(ctx, &domain.BlacklistedToken{
		Token:     refreshToken,
		ExpiresAt: refreshClaims.ExpiresAt.Time,
		CreatedAt: now,
	}); err != nil {
		log.Printf("auth: refresh blacklist write failed for user_id=%s: %v", callerUserID, err)
	}
	return nil
}

func secondsUntil(t time.Time) int64 {
	return int64(time.Until(t).Seconds())
}
