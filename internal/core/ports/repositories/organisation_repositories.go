package repositories

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// OrganisationReader defines read operations for agent organisations.
type OrganisationReader interface {
	FindOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error)
	ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, error)
}

// OrganisationWriter defines write operations for agent organisations.
type OrganisationWriter interface {
	SaveOrganisation(ctx context.Context, org domain.Organisation) error
	UpdateOrganisation(ctx context.Context, org domain.Organisation) error
}

// OrganisationRepositoryFacade combines all organisation repository interfaces.
type OrganisationRepositoryFacade interface {
	OrganisationReader
	OrganisationWriter
}
