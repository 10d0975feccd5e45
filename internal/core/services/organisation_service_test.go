package services_test

import (
	"context"
	"testing"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrganisationService(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	staff := domain.Principal{UserID: "staff-1", Role: domain.RoleStaff}

	t.Run("create requires admin", func(t *testing.T) {
		repo := new(MockOrganisationRepository)
		svc := services.NewOrganisationService(repo)

		_, err := svc.CreateOrganisation(ctx, staff, dto.CreateOrganisationRequest{Name: "Agents Ltd", ContactEmail: "a@example.com"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		repo.On("SaveOrganisation", ctx, mock.MatchedBy(func(o domain.Organisation) bool { return o.Name == "Agents Ltd" && o.IsActive })).Return(nil).Once()
		org, err := svc.CreateOrganisation(ctx, admin, dto.CreateOrganisationRequest{Name: " Agents Ltd ", ContactEmail: "a@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "admin-1", org.CreatedBy)
	})

	t.Run("update deactivates", func(t *testing.T) {
		repo := new(MockOrganisationRepository)
		svc := services.NewOrganisationService(repo)
		repo.On("FindOrganisationByID", ctx, "org-1").Return(&domain.Organisation{OrganisationID: "org-1", Name: "Agents Ltd", IsActive: true}, nil)
		repo.On("UpdateOrganisation", ctx, mock.MatchedBy(func(o domain.Organisation) bool { return !o.IsActive })).Return(nil).Once()

		inactive := false
		org, err := svc.UpdateOrganisation(ctx, admin, "org-1", dto.UpdateOrganisationRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, org.IsActive)

		same := "Agents Ltd"
		unchanged, err := svc.UpdateOrganisation(ctx, admin, "org-1", dto.UpdateOrganisationRequest{Name: &same})
		require.NoError(t, err)
		assert.True(t, unchanged.IsActive)
		repo.AssertNumberOfCalls(t, "UpdateOrganisation", 1)
	})
}
