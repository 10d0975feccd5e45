package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// principalOrAbort returns the authenticated caller or writes a 401.
func principalOrAbort(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Principal{}, false
	}
	return p, true
}

// writeServiceError maps a service error onto a status code and a client-safe message.
// Internal errors are logged with fallback and never exposed.
func writeServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// bindError writes a 400 for a request that failed binding.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
