package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// BeneficiaryRequest carries the receiving bank and account details.
type BeneficiaryRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Address              string  `json:"address" binding:"required"`
	Country              string  `json:"country" binding:"required,iso3166_1_alpha2"`
	BankName             string  `json:"bankName" binding:"required"`
	BankAddress          string  `json:"bankAddress" binding:"required"`
	AccountNumber        string  `json:"accountNumber" binding:"required,alphanum,max=34"`
	SwiftCode            string  `json:"swiftCode" binding:"required,bic"`
	IBAN                 *string `json:"iban" binding:"omitempty,alphanum,min=15,max=34"`
	RoutingCode          *string `json:"routingCode" binding:"omitempty,alphanum,max=16"`
	IntermediaryBankName *string `json:"intermediaryBankName"`
	IntermediarySwift    *string `json:"intermediarySwift" binding:"omitempty,bic"`
	IntermediaryAccount  *string `json:"intermediaryAccount" binding:"omitempty,alphanum,max=34"`
	OrganisationID       *string `json:"organisationID" binding:"omitempty,uuid"`
}

// ToDomain converts the request into a beneficiary with no id or audit fields.
func (r BeneficiaryRequest) ToDomain() domain.Beneficiary {
	return domain.Beneficiary{
		OrganisationID:       r.OrganisationID,
		Name:                 r.Name,
		Address:              r.Address,
		Country:              r.Country,
		BankName:             r.BankName,
		BankAddress:          r.BankAddress,
		AccountNumber:        r.AccountNumber,
		SwiftCode:            r.SwiftCode,
		IBAN:                 r.IBAN,
		RoutingCode:          r.RoutingCode,
		IntermediaryBankName: r.IntermediaryBankName,
		IntermediarySwift:    r.IntermediarySwift,
		IntermediaryAccount:  r.IntermediaryAccount,
	}
}

// ListBeneficiariesParams defines query parameters for listing beneficiaries.
type ListBeneficiariesParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// BeneficiaryResponse defines data returned for a beneficiary.
type BeneficiaryResponse struct {
	BeneficiaryID        string    `json:"beneficiaryID"`
	OrganisationID       *string   `json:"organisationID,omitempty"`
	Name                 string    `json:"name"`
	Address              string    `json:"address"`
	Country              string    `json:"country"`
	BankName             string    `json:"bankName"`
	BankAddress          string    `json:"bankAddress"`
	AccountNumber        string    `json:"accountNumber"`
	SwiftCode            string    `json:"swiftCode"`
	IBAN                 *string   `json:"iban,omitempty"`
	RoutingCode          *string   `json:"routingCode,omitempty"`
	IntermediaryBankName *string   `json:"intermediaryBankName,omitempty"`
	IntermediarySwift    *string   `json:"intermediarySwift,omitempty"`
	IntermediaryAccount  *string   `json:"intermediaryAccount,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	LastUpdatedAt        time.Time `json:"lastUpdatedAt"`
}

// ToBeneficiaryResponse converts domain.Beneficiary to DTO.
func ToBeneficiaryResponse(b *domain.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		BeneficiaryID:        b.BeneficiaryID,
		OrganisationID:       b.OrganisationID,
		Name:                 b.Name,
		Address:              b.Address,
		Country:              b.Country,
		BankName:             b.BankName,
		BankAddress:          b.BankAddress,
		AccountNumber:        b.AccountNumber,
		SwiftCode:            b.SwiftCode,
		IBAN:                 b.IBAN,
		RoutingCode:          b.RoutingCode,
		IntermediaryBankName: b.IntermediaryBankName,
		IntermediarySwift:    b.IntermediarySwift,
		IntermediaryAccount:  b.IntermediaryAccount,
		CreatedAt:            b.CreatedAt,
		LastUpdatedAt:        b.LastUpdatedAt,
	}
}

// ListBeneficiariesResponse wraps a list of beneficiaries.
type ListBeneficiariesResponse struct {
	Beneficiaries []BeneficiaryResponse `json:"beneficiaries"`
}

// ToListBeneficiariesResponse converts a slice of domain.Beneficiary to DTO.
func ToListBeneficiariesResponse(bs []domain.Beneficiary) ListBeneficiariesResponse {
	list := make([]BeneficiaryResponse, len(bs))
	for i := range bs {
		list[i] = ToBeneficiaryResponse(&bs[i])
	}
	return ListBeneficiariesResponse{Beneficiaries: list}
}
