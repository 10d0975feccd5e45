package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a new JWT access token carrying the user's role and organisation.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(*user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
// 32 random bytes give a 64-character hex token.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string and returns the associated user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found for refresh token validation", slog.String("user_id", userID))
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if !user.IsActive || user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		logger.Info("Stored refresh token has expired", slog.String("user_id", userID))
		return nil, apperrors.ErrRefreshTokenExpired
	}

	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		logger.Warn("Refresh token mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// IDTokenValidator verifies a Google ID token for an audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleIDTokenService implements GoogleIDTokenSvc.
type googleIDTokenService struct {
	clientID string
	validate IDTokenValidator
}

// NewGoogleIDTokenService validates tokens against Google's published keys.
func NewGoogleIDTokenService(cfg *config.Config) portssvc.GoogleIDTokenSvc {
	return NewGoogleIDTokenServiceWithValidator(cfg.GoogleClientID, idtoken.Validate)
}

// NewGoogleIDTokenServiceWithValidator allows swapping the verifier.
func NewGoogleIDTokenServiceWithValidator(clientID string, validate IDTokenValidator) portssvc.GoogleIDTokenSvc {
	return &googleIDTokenService{clientID: clientID, validate: validate}
}

// ValidateGoogleIDToken validates an ID token received from Google and returns its verified claims.
func (s *googleIDTokenService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: google ID token validation failed", apperrors.ErrUnauthorized)
	}

	info := &domain.GoogleUserInfo{Subject: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		info.Name = v
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}
	return info, nil
}
