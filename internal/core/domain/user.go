package domain

import "time"

// UserRole defines the application-wide role of a user.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleStaff      UserRole = "STAFF"
	RoleAgent      UserRole = "AGENT"
)

// roleRank orders roles so that a higher rank may act wherever a lower rank may.
var roleRank = map[UserRole]int{
	RoleAgent:      1,
	RoleStaff:      2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r is the same as or above min.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min] && r.IsValid()
}

// CanManage reports whether a user with role r may create or modify users holding target.
// Super-admins manage everyone, admins manage staff and agents, nobody else manages users.
func (r UserRole) CanManage(target UserRole) bool {
	switch r {
	case RoleSuperAdmin:
		return target.IsValid()
	case RoleAdmin:
		return target == RoleStaff || target == RoleAgent
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID         string   `json:"userID"` // Primary Key (UUID)
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	PasswordHash   string   `json:"-"`
	Role           UserRole `json:"role"`
	OrganisationID *string  `json:"organisationID,omitempty"` // Required for agents
	IsActive       bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// Principal is the authenticated caller as seen by the services.
type Principal struct {
	UserID         string
	Role           UserRole
	OrganisationID *string
}

// IsAgent reports whether the caller is restricted to its own organisation's data.
func (p Principal) IsAgent() bool {
	return p.Role == RoleAgent
}

// GoogleUserInfo holds the verified claims we read from a Google ID token.
type GoogleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}
