package repositories

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// BeneficiaryRepositoryFacade defines persistence for reusable beneficiaries.
type BeneficiaryRepositoryFacade interface {
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	// ListBeneficiaries lists every beneficiary when organisationID is nil.
	ListBeneficiaries(ctx context.Context, organisationID *string, limit, offset int) ([]domain.Beneficiary, error)
	SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error
	UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error
}
