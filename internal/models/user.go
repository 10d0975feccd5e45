package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID         string  `db:"user_id"`
	Username       string  `db:"username"`
	Email          string  `db:"email"`
	Name           string  `db:"name"`
	PasswordHash   string  `db:"password_hash"`
	Role           string  `db:"role"`
	OrganisationID *string `db:"organisation_id"`
	IsActive       bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
