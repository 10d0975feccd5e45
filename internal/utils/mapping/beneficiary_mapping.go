package mapping

import (
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/models"
)

// ToModelBeneficiary converts a domain Beneficiary to a model Beneficiary
func ToModelBeneficiary(d domain.Beneficiary) models.Beneficiary {
	return models.Beneficiary{
		BeneficiaryID:        d.BeneficiaryID,
		OrganisationID:       d.OrganisationID,
		Name:                 d.Name,
		Address:              d.Address,
		Country:              d.Country,
		BankName:             d.BankName,
		BankAddress:          d.BankAddress,
		AccountNumber:        d.AccountNumber,
		SwiftCode:            d.SwiftCode,
		IBAN:                 d.IBAN,
		RoutingCode:          d.RoutingCode,
		IntermediaryBankName: d.IntermediaryBankName,
		IntermediarySwift:    d.IntermediarySwift,
		IntermediaryAccount:  d.IntermediaryAccount,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBeneficiary converts a model Beneficiary to a domain Beneficiary
func ToDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID:        m.BeneficiaryID,
		OrganisationID:       m.OrganisationID,
		Name:                 m.Name,
		Address:              m.Address,
		Country:              m.Country,
		BankName:             m.BankName,
		BankAddress:          m.BankAddress,
		AccountNumber:        m.AccountNumber,
		SwiftCode:            m.SwiftCode,
		IBAN:                 m.IBAN,
		RoutingCode:          m.RoutingCode,
		IntermediaryBankName: m.IntermediaryBankName,
		IntermediarySwift:    m.IntermediarySwift,
		IntermediaryAccount:  m.IntermediaryAccount,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
