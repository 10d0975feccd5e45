package dto

import "time"

// LoginRequest represents the username/password login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the frontend.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token            string       `json:"token"`
	ExpiresAt        time.Time    `json:"expiresAt"`
	RefreshToken     string       `json:"refreshToken"`
	RefreshExpiresAt time.Time    `json:"refreshExpiresAt"`
	User             UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
