package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// CreateUserRequest defines the data for creating a user.
type CreateUserRequest struct {
	Username       string          `json:"username" binding:"required,min=3,max=64"`
	Email          string          `json:"email" binding:"required,email"`
	Name           string          `json:"name" binding:"required"`
	Password       string          `json:"password" binding:"required,min=8"`
	Role           domain.UserRole `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN STAFF AGENT"`
	OrganisationID *string         `json:"organisationID" binding:"omitempty,uuid"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Password       *string          `json:"password" binding:"omitempty,min=8"`
	Role           *domain.UserRole `json:"role" binding:"omitempty,oneof=SUPER_ADMIN ADMIN STAFF AGENT"`
	OrganisationID *string          `json:"organisationID" binding:"omitempty,uuid"`
	IsActive       *bool            `json:"isActive"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID         string          `json:"userID"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           domain.UserRole `json:"role"`
	OrganisationID *string         `json:"organisationID,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		OrganisationID: u.OrganisationID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
