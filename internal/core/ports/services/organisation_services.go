package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/dto"
)

// OrganisationSvcFacade manages agent organisations.
type OrganisationSvcFacade interface {
	CreateOrganisation(ctx context.Context, actor domain.Principal, req dto.CreateOrganisationRequest) (*domain.Organisation, error)
	GetOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error)
	ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, error)
	UpdateOrganisation(ctx context.Context, actor domain.Principal, organisationID string, req dto.UpdateOrganisationRequest) (*domain.Organisation, error)
}
