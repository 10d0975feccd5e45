package models

import "github.com/shopspring/decimal"

// Order is the orders table row. Computed columns are NULL until confirmation.
type Order struct {
	OrderID            string          `db:"order_id"`
	OrganisationID     *string         `db:"organisation_id"`
	ForeignAmount      decimal.Decimal `db:"foreign_amount"`
	CurrencyCode       string          `db:"currency_code"`
	DestinationCountry string          `db:"destination_country"`
	PurposeCode        string          `db:"purpose_code"`
	Margin             decimal.Decimal `db:"margin"`
	ForeignBankCharges int             `db:"foreign_bank_charges"`
	EducationLoan      bool            `db:"education_loan"`
	Status             string          `db:"status"`
	BeneficiaryID      *string         `db:"beneficiary_id"`

	MarketRate   decimal.NullDecimal `db:"market_rate"`
	CustomerRate decimal.NullDecimal `db:"customer_rate"`
	InrAmount    decimal.NullDecimal `db:"inr_amount"`
	BankFee      decimal.NullDecimal `db:"bank_fee"`
	GST          decimal.NullDecimal `db:"gst"`
	TCS          decimal.NullDecimal `db:"tcs"`
	TotalPayable decimal.NullDecimal `db:"total_payable"`
	AuditFields
}
