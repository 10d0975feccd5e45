package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/google/uuid"
)

type beneficiaryService struct {
	BaseService
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
	orgRepo         portsrepo.OrganisationReader
}

// NewBeneficiaryService creates the beneficiary service.
func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade, orgRepo portsrepo.OrganisationReader) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{beneficiaryRepo: beneficiaryRepo, orgRepo: orgRepo}
}

var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, actor domain.Principal, req dto.BeneficiaryRequest) (*domain.Beneficiary, error) {
	b := normaliseBeneficiary(req.ToDomain())

	orgID, err := s.owningOrganisation(ctx, actor, req.OrganisationID)
	if err != nil {
		return nil, err
	}
	b.OrganisationID = orgID

	if err := validateBankDetails(&b); err != nil {
		return nil, err
	}

	b.BeneficiaryID = uuid.NewString()
	b.AuditFields = newAudit(actor.UserID)
	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, b); err != nil {
		s.LogError(ctx, err, "Failed to save beneficiary", slog.String("beneficiary_id", b.BeneficiaryID))
		return nil, fmt.Errorf("failed to create beneficiary: %w", err)
	}
	s.LogInfo(ctx, "Beneficiary created", slog.String("beneficiary_id", b.BeneficiaryID), slog.String("country", b.Country))
	return &b, nil
}

// owningOrganisation resolves which organisation a beneficiary belongs to. Agents always use their own.
func (s *beneficiaryService) owningOrganisation(ctx context.Context, actor domain.Principal, requested *string) (*string, error) {
	if actor.IsAgent() {
		if actor.OrganisationID == nil {
			return nil, apperrors.NewForbiddenError("agent has no organisation")
		}
		if requested != nil && *requested != *actor.OrganisationID {
			return nil, apperrors.NewForbiddenError("agents can only manage beneficiaries of their own organisation")
		}
		return actor.OrganisationID, nil
	}
	if requested == nil || *requested == "" {
		return nil, nil
	}
	if _, err := s.orgRepo.FindOrganisationByID(ctx, *requested); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("organisation %s does not exist", *requested))
		}
		return nil, fmt.Errorf("failed to load organisation: %w", err)
	}
	return requested, nil
}

func (s *beneficiaryService) GetBeneficiary(ctx context.Context, actor domain.Principal, beneficiaryID string) (*domain.Beneficiary, error) {
	b, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiary %s: %w", beneficiaryID, err)
	}
	if !b.VisibleTo(actor) {
		return nil, apperrors.NewNotFoundError("beneficiary " + beneficiaryID + " not found")
	}
	return b, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, actor domain.Principal, limit, offset int) ([]domain.Beneficiary, error) {
	var orgID *string
	if actor.IsAgent() {
		if actor.OrganisationID == nil {
			return nil, apperrors.NewForbiddenError("agent has no organisation")
		}
		orgID = actor.OrganisationID
	}
	list, err := s.beneficiaryRepo.ListBeneficiaries(ctx, orgID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list beneficiaries")
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	if list == nil {
		list = []domain.Beneficiary{}
	}
	return list, nil
}

// UpdateBeneficiary replaces the bank details. The owning organisation never changes.
func (s *beneficiaryService) UpdateBeneficiary(ctx context.Context, actor domain.Principal, beneficiaryID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error) {
	existing, err := s.GetBeneficiary(ctx, actor, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if req.OrganisationID != nil && !sameOptional(req.OrganisationID, existing.OrganisationID) {
		return nil, apperrors.NewValidationError("a beneficiary cannot move to another organisation")
	}

	updated := normaliseBeneficiary(req.ToDomain())
	updated.BeneficiaryID = existing.BeneficiaryID
	updated.OrganisationID = existing.OrganisationID
	updated.AuditFields = existing.AuditFields
	if err := validateBankDetails(&updated); err != nil {
		return nil, err
	}

	touch(&updated.AuditFields, actor.UserID)
	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update beneficiary", slog.String("beneficiary_id", beneficiaryID))
		return nil, fmt.Errorf("failed to update beneficiary %s: %w", beneficiaryID, err)
	}
	return &updated, nil
}

func normaliseBeneficiary(b domain.Beneficiary) domain.Beneficiary {
	b.Name = strings.TrimSpace(b.Name)
	b.Address = strings.TrimSpace(b.Address)
	b.Country = strings.ToUpper(strings.TrimSpace(b.Country))
	b.BankName = strings.TrimSpace(b.BankName)
	b.BankAddress = strings.TrimSpace(b.BankAddress)
	b.AccountNumber = strings.ToUpper(strings.TrimSpace(b.AccountNumber))
	b.SwiftCode = strings.ToUpper(strings.TrimSpace(b.SwiftCode))
	b.IBAN = upperOptional(b.IBAN)
	b.RoutingCode = upperOptional(b.RoutingCode)
	b.IntermediaryBankName = trimOptional(b.IntermediaryBankName)
	b.IntermediarySwift = upperOptional(b.IntermediarySwift)
	b.IntermediaryAccount = upperOptional(b.IntermediaryAccount)
	return b
}

// validateBankDetails applies the per-country account rules and drops intermediary fields where they do not apply.
func validateBankDetails(b *domain.Beneficiary) error {
	if !domain.IsKnownCountry(b.Country) {
		return apperrors.NewValidationError(fmt.Sprintf("destination country %s is not supported", b.Country))
	}
	if domain.RequiresIBAN(b.Country) && b.IBAN == nil {
		return apperrors.NewValidationError(fmt.Sprintf("an IBAN is required for beneficiaries in %s", b.Country))
	}
	if !domain.UsesIntermediaryBank(b.Country) && b.HasIntermediary() {
		b.ClearIntermediary()
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func upperOptional(s *string) *string {
	v := trimOptional(s)
	if v == nil {
		return nil
	}
	u := strings.ToUpper(*v)
	return &u
}
