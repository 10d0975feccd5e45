package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	googleSvc    portssvc.GoogleIDTokenSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, gs portssvc.GoogleIDTokenSvc) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		googleSvc:    gs,
	}
}

// registerAuthRoutes sets up the public authentication routes.
// Both login routes share the per-IP limiter.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.User, services.Token, services.Google)
	limit := middleware.RateLimit(loginLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limit, h.Login)
		auth.POST("/google", limit, h.GoogleLogin)
		auth.POST("/refresh", h.Refresh)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token carrying the user's role and organisation.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		writeServiceError(c, err, "Failed to authenticate user")
		return
	}

	h.issueTokens(c, user)
}

// GoogleLogin godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token and signs in the existing user with the same verified email.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	info, err := h.googleSvc.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google token"})
			return
		}
		writeServiceError(c, err, "Failed to verify Google token")
		return
	}

	user, err := h.userService.GetUserByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Accounts are provisioned by admins; Google sign-in never creates one.
			logger.Warn("Google sign-in for unknown email", slog.String("email", info.Email))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No account is registered for this Google user"})
			return
		}
		writeServiceError(c, err, "Failed to look up user")
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Account is disabled"})
		return
	}

	h.issueTokens(c, user)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(ctx, req.UserID, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenExpired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token has expired"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		default:
			writeServiceError(c, err, "Failed to refresh token")
		}
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		writeServiceError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// issueTokens writes a LoginResponse after storing the hash of a fresh refresh token.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		writeServiceError(c, err, "Failed to generate token")
		return
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		writeServiceError(c, err, "Failed to generate token")
		return
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiresAt); err != nil {
		writeServiceError(c, err, "Failed to store refresh token")
		return
	}

	logger.Info("User signed in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:            accessToken,
		ExpiresAt:        expiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		User:             dto.ToUserResponse(user),
	})
}
