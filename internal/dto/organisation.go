package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// CreateOrganisationRequest defines data for creating a new agent organisation.
type CreateOrganisationRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
}

// UpdateOrganisationRequest defines the editable organisation fields.
type UpdateOrganisationRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	IsActive     *bool   `json:"isActive"`
}

// OrganisationResponse defines data returned for an organisation.
type OrganisationResponse struct {
	OrganisationID string    `json:"organisationID"`
	Name           string    `json:"name"`
	ContactEmail   string    `json:"contactEmail"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ToOrganisationResponse converts domain.Organisation to DTO.
func ToOrganisationResponse(o *domain.Organisation) OrganisationResponse {
	return OrganisationResponse{
		OrganisationID: o.OrganisationID,
		Name:           o.Name,
		ContactEmail:   o.ContactEmail,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
		LastUpdatedAt:  o.LastUpdatedAt,
		LastUpdatedBy:  o.LastUpdatedBy,
	}
}

// ListOrganisationsResponse wraps a list of organisations.
type ListOrganisationsResponse struct {
	Organisations []OrganisationResponse `json:"organisations"`
}

// ToListOrganisationsResponse converts a slice of domain.Organisation to DTO.
func ToListOrganisationsResponse(os []domain.Organisation) ListOrganisationsResponse {
	list := make([]OrganisationResponse, len(os))
	for i := range os {
		list[i] = ToOrganisationResponse(&os[i])
	}
	return ListOrganisationsResponse{Organisations: list}
}

// ListOrganisationsParams defines query parameters for listing organisations.
type ListOrganisationsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
