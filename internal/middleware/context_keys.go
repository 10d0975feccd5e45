package middleware

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// principalKey is the key used to store the authenticated caller in the request context.
const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext retrieves the authenticated caller set by AuthMiddleware.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	p, ok := c.Request.Context().Value(principalKey).(domain.Principal)
	return p, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := GetPrincipalFromContext(c)
	if !ok || p.UserID == "" {
		return "", false
	}
	return p.UserID, true
}
