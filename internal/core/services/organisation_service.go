package services

import (
	"context"
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

type organisationService struct {
	BaseService
	orgRepo portsrepo.OrganisationRepositoryFacade
}

func NewOrganisationService(orgRepo portsrepo.OrganisationRepositoryFacade) portssvc.OrganisationSvcFacade {
	return &organisationService{orgRepo: orgRepo}
}

var _ portssvc.OrganisationSvcFacade = (*organisationService)(nil)

func (s *organisationService) CreateOrganisation(ctx context.Context, actor domain.Principal, req dto.CreateOrganisationRequest) (*domain.Organisation, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbiddenError("only administrators can create organisations")
	}
	org := domain.Organisation{
		OrganisationID: uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		ContactEmail:   strings.TrimSpace(req.ContactEmail),
		IsActive:       true,
		AuditFields:    newAudit(actor.UserID),
	}
	if org.Name == "" {
		return nil, apperrors.NewValidationError("organisation name is required")
	}

	if err := s.orgRepo.SaveOrganisation(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organisation", slog.String("name", org.Name))
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}
	s.LogInfo(ctx, "Organisation created", slog.String("organisation_id", org.OrganisationID))
	return &org, nil
}

func (s *organisationService) GetOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error) {
	org, err := s.orgRepo.FindOrganisationByID(ctx, organisationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organisation %s: %w", organisationID, err)
	}
	return org, nil
}

func (s *organisationService) ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, error) {
	orgs, err := s.orgRepo.ListOrganisations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list organisations: %w", err)
	}
	if orgs == nil {
		orgs = []domain.Organisation{}
	}
	return orgs, nil
}

func (s *organisationService) UpdateOrganisation(ctx context.Context, actor domain.Principal, organisationID string, req dto.UpdateOrganisationRequest) (*domain.Organisation, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbiddenError("only administrators can modify organisations")
	}
	org, err := s.GetOrganisationByID(ctx, organisationID)
	if err != nil {
		return nil, err
	}

	updated := *org
	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("organisation name cannot be empty")
		}
		if name != org.Name {
			updated.Name = name
			changed = true
		}
	}
	if req.ContactEmail != nil && *req.ContactEmail != org.ContactEmail {
		updated.ContactEmail = *req.ContactEmail
		changed = true
	}
	if req.IsActive != nil && *req.IsActive != org.IsActive {
		updated.IsActive = *req.IsActive
		changed = true
	}
	if !changed {
		return org, nil
	}

	touch(&updated.AuditFields, actor.UserID)
	if err := s.orgRepo.UpdateOrganisation(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update organisation", slog.String("organisation_id", organisationID))
		return nil, fmt.Errorf("failed to update organisation %s: %w", organisationID, err)
	}
	return &updated, nil
}
