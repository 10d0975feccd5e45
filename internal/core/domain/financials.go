package domain

import "github.com/shopspring/decimal"

// Purpose codes that attract the reduced TCS slab.
const (
	PurposeEducation = "EDUCATION"
	PurposeMedical   = "MEDICAL"
)

// FinancialInput is everything the calculator needs apart from the market rate.
type FinancialInput struct {
	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	CurrencyCode       string          `json:"currencyCode"`
	DestinationCountry string          `json:"destinationCountry"`
	PurposeCode        string          `json:"purposeCode"`
	Margin             decimal.Decimal `json:"margin"`
	ForeignBankCharges int             `json:"foreignBankCharges"`
	EducationLoan      bool            `json:"educationLoan"`
}

// CalculatedValues is the derived pricing of an order. It is never stored as a unit.
type CalculatedValues struct {
	MarketRate          decimal.Decimal `json:"marketRate"`
	Margin              decimal.Decimal `json:"margin"`
	CustomerRate        decimal.Decimal `json:"customerRate"`
	CustomerRateDisplay string          `json:"customerRateDisplay"`
	InrAmount           decimal.Decimal `json:"inrAmount"`
	BankFee             decimal.Decimal `json:"bankFee"`
	GST                 decimal.Decimal `json:"gst"`
	TCS                 decimal.Decimal `json:"tcs"`
	TotalPayable        decimal.Decimal `json:"totalPayable"`
}
