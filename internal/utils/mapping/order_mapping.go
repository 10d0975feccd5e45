package mapping

import (
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:            d.OrderID,
		OrganisationID:     d.OrganisationID,
		ForeignAmount:      d.ForeignAmount,
		CurrencyCode:       d.CurrencyCode,
		DestinationCountry: d.DestinationCountry,
		PurposeCode:        d.PurposeCode,
		Margin:             d.Margin,
		ForeignBankCharges: d.ForeignBankCharges,
		EducationLoan:      d.EducationLoan,
		Status:             d.Status,
		BeneficiaryID:      d.BeneficiaryID,
		MarketRate:         toNullDecimal(d.MarketRate),
		CustomerRate:       toNullDecimal(d.CustomerRate),
		InrAmount:          toNullDecimal(d.InrAmount),
		BankFee:            toNullDecimal(d.BankFee),
		GST:                toNullDecimal(d.GST),
		TCS:                toNullDecimal(d.TCS),
		TotalPayable:       toNullDecimal(d.TotalPayable),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:            m.OrderID,
		OrganisationID:     m.OrganisationID,
		ForeignAmount:      m.ForeignAmount,
		CurrencyCode:       m.CurrencyCode,
		DestinationCountry: m.DestinationCountry,
		PurposeCode:        m.PurposeCode,
		Margin:             m.Margin,
		ForeignBankCharges: m.ForeignBankCharges,
		EducationLoan:      m.EducationLoan,
		Status:             m.Status,
		BeneficiaryID:      m.BeneficiaryID,
		MarketRate:         fromNullDecimal(m.MarketRate),
		CustomerRate:       fromNullDecimal(m.CustomerRate),
		InrAmount:          fromNullDecimal(m.InrAmount),
		BankFee:            fromNullDecimal(m.BankFee),
		GST:                fromNullDecimal(m.GST),
		TCS:                fromNullDecimal(m.TCS),
		TotalPayable:       fromNullDecimal(m.TotalPayable),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSender converts a domain Sender to a model Sender
func ToModelSender(d domain.Sender) models.Sender {
	return models.Sender{
		SenderID:              d.SenderID,
		OrderID:               d.OrderID,
		Name:                  d.Name,
		PAN:                   d.PAN,
		Address:               d.Address,
		City:                  d.City,
		State:                 d.State,
		PostalCode:            d.PostalCode,
		Phone:                 d.Phone,
		Email:                 d.Email,
		SourceOfFunds:         d.SourceOfFunds,
		RelationshipToStudent: d.RelationshipToStudent,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSender converts a model Sender to a domain Sender
func ToDomainSender(m models.Sender) domain.Sender {
	return domain.Sender{
		SenderID:              m.SenderID,
		OrderID:               m.OrderID,
		Name:                  m.Name,
		PAN:                   m.PAN,
		Address:               m.Address,
		City:                  m.City,
		State:                 m.State,
		PostalCode:            m.PostalCode,
		Phone:                 m.Phone,
		Email:                 m.Email,
		SourceOfFunds:         m.SourceOfFunds,
		RelationshipToStudent: m.RelationshipToStudent,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
