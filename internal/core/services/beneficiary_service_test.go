package services_test

import (
	"context"
	"testing"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func beneficiaryRequest(country string) dto.BeneficiaryRequest {
	return dto.BeneficiaryRequest{
		Name:                 "University of Somewhere",
		Address:              "1 College Ave",
		Country:              country,
		BankName:             "First Bank",
		BankAddress:          "10 Main St",
		AccountNumber:        "12345678",
		SwiftCode:            "firsus33",
		IntermediaryBankName: strPtr("Correspondent Bank"),
		IntermediarySwift:    strPtr("corrus33"),
	}
}

func TestBeneficiaryService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.NewString()
	agent := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAgent, OrganisationID: &orgID}

	t.Run("intermediary kept where it applies", func(t *testing.T) {
		repo := new(MockBeneficiaryRepository)
		svc := services.NewBeneficiaryService(repo, new(MockOrganisationRepository))
		repo.On("SaveBeneficiary", ctx, mock.MatchedBy(func(b domain.Beneficiary) bool {
			return b.HasIntermediary() && *b.OrganisationID == orgID && b.SwiftCode == "FIRSUS33"
		})).Return(nil).Once()

		b, err := svc.CreateBeneficiary(ctx, agent, beneficiaryRequest("us"))
		require.NoError(t, err)
		assert.Equal(t, "US", b.Country)
		assert.Equal(t, "CORRUS33", *b.IntermediarySwift)
		repo.AssertExpectations(t)
	})

	t.Run("intermediary dropped elsewhere", func(t *testing.T) {
		repo := new(MockBeneficiaryRepository)
		svc := services.NewBeneficiaryService(repo, new(MockOrganisationRepository))
		repo.On("SaveBeneficiary", ctx, mock.MatchedBy(func(b domain.Beneficiary) bool { return !b.HasIntermediary() })).Return(nil).Once()

		req := beneficiaryRequest("AU")
		b, err := svc.CreateBeneficiary(ctx, agent, req)
		require.NoError(t, err)
		assert.False(t, b.HasIntermediary())
	})

	t.Run("IBAN required", func(t *testing.T) {
		repo := new(MockBeneficiaryRepository)
		svc := services.NewBeneficiaryService(repo, new(MockOrganisationRepository))

		_, err := svc.CreateBeneficiary(ctx, agent, beneficiaryRequest("DE"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		req := beneficiaryRequest("DE")
		req.IBAN = strPtr("de89370400440532013000")
		repo.On("SaveBeneficiary", ctx, mock.MatchedBy(func(b domain.Beneficiary) bool { return *b.IBAN == "DE89370400440532013000" })).Return(nil).Once()
		_, err = svc.CreateBeneficiary(ctx, agent, req)
		assert.NoError(t, err)
	})

	t.Run("unknown organisation", func(t *testing.T) {
		orgRepo := new(MockOrganisationRepository)
		svc := services.NewBeneficiaryService(new(MockBeneficiaryRepository), orgRepo)
		missing := uuid.NewString()
		orgRepo.On("FindOrganisationByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()

		req := beneficiaryRequest("US")
		req.OrganisationID = &missing
		_, err := svc.CreateBeneficiary(ctx, domain.Principal{UserID: "staff", Role: domain.RoleStaff}, req)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestBeneficiaryService_VisibilityAndUpdate(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.NewString()
	otherOrg := uuid.NewString()
	agent := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAgent, OrganisationID: &orgID}
	repo := new(MockBeneficiaryRepository)
	svc := services.NewBeneficiaryService(repo, new(MockOrganisationRepository))

	foreign := &domain.Beneficiary{BeneficiaryID: "b-foreign", OrganisationID: &otherOrg, Country: "US"}
	own := &domain.Beneficiary{BeneficiaryID: "b-own", OrganisationID: &orgID, Country: "US", AuditFields: domain.AuditFields{CreatedBy: "creator"}}
	repo.On("FindBeneficiaryByID", ctx, "b-foreign").Return(foreign, nil)
	repo.On("FindBeneficiaryByID", ctx, "b-own").Return(own, nil)

	_, err := svc.GetBeneficiary(ctx, agent, "b-foreign")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	req := beneficiaryRequest("US")
	req.OrganisationID = &otherOrg
	_, err = svc.UpdateBeneficiary(ctx, agent, "b-own", req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.On("UpdateBeneficiary", ctx, mock.MatchedBy(func(b domain.Beneficiary) bool {
		return b.BeneficiaryID == "b-own" && b.CreatedBy == "creator" && b.LastUpdatedBy == agent.UserID
	})).Return(nil).Once()
	updated, err := svc.UpdateBeneficiary(ctx, agent, "b-own", beneficiaryRequest("US"))
	require.NoError(t, err)
	assert.Equal(t, orgID, *updated.OrganisationID)

	repo.On("ListBeneficiaries", ctx, &orgID, 20, 0).Return(nil, nil).Once()
	list, err := svc.ListBeneficiaries(ctx, agent, 20, 0)
	require.NoError(t, err)
	assert.NotNil(t, list)
}
