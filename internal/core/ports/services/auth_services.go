package services

import (
	"context"
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleIDTokenSvc verifies Google ID tokens posted by the frontend.
type GoogleIDTokenSvc interface {
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error)
}
