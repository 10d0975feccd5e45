package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/dto"
)

// BeneficiarySvcFacade manages reusable beneficiaries.
type BeneficiarySvcFacade interface {
	CreateBeneficiary(ctx context.Context, actor domain.Principal, req dto.BeneficiaryRequest) (*domain.Beneficiary, error)
	GetBeneficiary(ctx context.Context, actor domain.Principal, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, actor domain.Principal, limit, offset int) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, actor domain.Principal, beneficiaryID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error)
}
