package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Well-known lifecycle labels. Status is free text; these are the ones the workflow reacts to.
const (
	StatusDraft     = "Draft"
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusRejected  = "Rejected"
)

// IsTerminalStatus reports whether an order in status s can no longer be edited.
func IsTerminalStatus(s string) bool {
	return strings.EqualFold(s, StatusCompleted) || strings.EqualFold(s, StatusRejected)
}

// Order is the central record of a remittance request.
// The computed fields stay nil until the order is confirmed against a live rate.
type Order struct {
	OrderID            string          `json:"orderID"`
	OrganisationID     *string         `json:"organisationID,omitempty"`
	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	CurrencyCode       string          `json:"currencyCode"`
	DestinationCountry string          `json:"destinationCountry"`
	PurposeCode        string          `json:"purposeCode"`
	Margin             decimal.Decimal `json:"margin"`
	ForeignBankCharges int             `json:"foreignBankCharges"` // 0 = OUR (sender bears charges)
	EducationLoan      bool            `json:"educationLoan"`
	Status             string          `json:"status"`
	BeneficiaryID      *string         `json:"beneficiaryID,omitempty"`

	MarketRate   *decimal.Decimal `json:"marketRate,omitempty"`
	CustomerRate *decimal.Decimal `json:"customerRate,omitempty"`
	InrAmount    *decimal.Decimal `json:"inrAmount,omitempty"`
	BankFee      *decimal.Decimal `json:"bankFee,omitempty"`
	GST          *decimal.Decimal `json:"gst,omitempty"`
	TCS          *decimal.Decimal `json:"tcs,omitempty"`
	TotalPayable *decimal.Decimal `json:"totalPayable,omitempty"`
	AuditFields
}

// FinancialInput extracts the calculator inputs from the order.
func (o Order) FinancialInput() FinancialInput {
	return FinancialInput{
		ForeignAmount:      o.ForeignAmount,
		CurrencyCode:       o.CurrencyCode,
		DestinationCountry: o.DestinationCountry,
		PurposeCode:        o.PurposeCode,
		Margin:             o.Margin,
		ForeignBankCharges: o.ForeignBankCharges,
		EducationLoan:      o.EducationLoan,
	}
}

// ApplyCalculatedValues writes the confirmed figures back onto the order.
func (o *Order) ApplyCalculatedValues(v CalculatedValues) {
	o.MarketRate = decimalPtr(v.MarketRate)
	o.CustomerRate = decimalPtr(v.CustomerRate)
	o.InrAmount = decimalPtr(v.InrAmount)
	o.BankFee = decimalPtr(v.BankFee)
	o.GST = decimalPtr(v.GST)
	o.TCS = decimalPtr(v.TCS)
	o.TotalPayable = decimalPtr(v.TotalPayable)
}

// ClearCalculatedValues drops the computed figures after a financial input changed.
func (o *Order) ClearCalculatedValues() {
	o.MarketRate = nil
	o.CustomerRate = nil
	o.InrAmount = nil
	o.BankFee = nil
	o.GST = nil
	o.TCS = nil
	o.TotalPayable = nil
}

// IsPriced reports whether the order carries confirmed financial values.
func (o Order) IsPriced() bool {
	return o.TotalPayable != nil
}

// VisibleTo reports whether p may read or change the order.
func (o Order) VisibleTo(p Principal) bool {
	if !p.IsAgent() {
		return true
	}
	return p.OrganisationID != nil && o.OrganisationID != nil && *p.OrganisationID == *o.OrganisationID
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
