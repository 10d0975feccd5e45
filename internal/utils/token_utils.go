package utils

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued to an authenticated user.
type Claims struct {
	Role           string `json:"role"`
	OrganisationID string `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token for the user with role and organisation claims.
func GenerateJWT(user domain.User, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if user.OrganisationID != nil {
		claims.OrganisationID = *user.OrganisationID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // expired, bad signature, etc.
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// Principal converts the claims into the caller identity used by services.
func (c *Claims) Principal() domain.Principal {
	p := domain.Principal{UserID: c.Subject, Role: domain.UserRole(c.Role)}
	if c.OrganisationID != "" {
		org := c.OrganisationID
		p.OrganisationID = &org
	}
	return p
}
