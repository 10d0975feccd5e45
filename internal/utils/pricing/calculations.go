package pricing

import (
	"fmt"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// BankFeeOUR is charged when the sender bears all foreign bank charges.
	BankFeeOUR = decimal.NewFromInt(1500)
	// BankFeeShared is charged when foreign bank charges are shared with the beneficiary.
	BankFeeShared = decimal.NewFromInt(300)
	// GSTRate applies to the bank fee only, never to the remitted amount.
	GSTRate = decimal.RequireFromString("0.18")
)

// TCSPolicy describes how tax collected at source is levied on the INR amount.
// Only the excess over Threshold is taxed.
type TCSPolicy struct {
	Threshold   decimal.Decimal
	DefaultRate decimal.Decimal
	PurposeRate map[string]decimal.Decimal // keyed by upper-case purpose code
}

// DefaultTCSPolicy returns the slabs in force: 5% for education and medical, 20% otherwise,
// above a ₹10,00,000 threshold.
func DefaultTCSPolicy() TCSPolicy {
	return NewTCSPolicy(decimal.NewFromInt(1000000))
}

// NewTCSPolicy returns the default slabs with a different threshold.
func NewTCSPolicy(threshold decimal.Decimal) TCSPolicy {
	return TCSPolicy{
		Threshold:   threshold,
		DefaultRate: decimal.RequireFromString("0.20"),
		PurposeRate: map[string]decimal.Decimal{
			domain.PurposeEducation: decimal.RequireFromString("0.05"),
			domain.PurposeMedical:   decimal.RequireFromString("0.05"),
		},
	}
}

// RateFor returns the TCS rate for a purpose code.
func (p TCSPolicy) RateFor(purpose string) decimal.Decimal {
	if r, ok := p.PurposeRate[strings.ToUpper(strings.TrimSpace(purpose))]; ok {
		return r
	}
	return p.DefaultRate
}

// Compute returns the TCS due on inrAmount. Education-loan funded remittances are exempt.
func (p TCSPolicy) Compute(inrAmount decimal.Decimal, purpose string, educationLoan bool) decimal.Decimal {
	if educationLoan {
		return decimal.Zero
	}
	excess := inrAmount.Sub(p.Threshold)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return round2(excess.Mul(p.RateFor(purpose)))
}

// BankFeeFor returns the bank fee for the foreign bank charges option.
func BankFeeFor(foreignBankCharges int) decimal.Decimal {
	if foreignBankCharges == 0 {
		return BankFeeOUR
	}
	return BankFeeShared
}

// ValidateInput checks the business rules that must hold before pricing.
func ValidateInput(in domain.FinancialInput, marketRate decimal.Decimal) error {
	if !in.ForeignAmount.IsPositive() {
		return apperrors.NewValidationError("foreign amount must be greater than zero")
	}
	if !marketRate.IsPositive() {
		return apperrors.NewValidationError("market rate must be greater than zero")
	}
	if in.Margin.IsNegative() {
		return apperrors.NewValidationError("margin cannot be negative")
	}
	if strings.TrimSpace(in.CurrencyCode) == "" {
		return apperrors.NewValidationError("currency code is required")
	}
	if !domain.IsCurrencyAllowed(in.DestinationCountry, in.CurrencyCode) {
		return apperrors.NewValidationError(fmt.Sprintf("currency %s is not offered for destination %s",
			strings.ToUpper(in.CurrencyCode), strings.ToUpper(in.DestinationCountry)))
	}
	return nil
}

// ComputeFinancials prices an order against a market rate. It holds no state:
// the same input and rate always give the same result.
func ComputeFinancials(in domain.FinancialInput, marketRate decimal.Decimal, policy TCSPolicy) (domain.CalculatedValues, error) {
	if err := ValidateInput(in, marketRate); err != nil {
		return domain.CalculatedValues{}, err
	}

	customerRate := marketRate.Add(in.Margin)
	inrAmount := round2(in.ForeignAmount.Mul(customerRate))
	bankFee := BankFeeFor(in.ForeignBankCharges)
	gst := round2(bankFee.Mul(GSTRate))
	tcs := policy.Compute(inrAmount, in.PurposeCode, in.EducationLoan)

	return domain.CalculatedValues{
		MarketRate:          marketRate,
		Margin:              in.Margin,
		CustomerRate:        customerRate,
		CustomerRateDisplay: customerRate.StringFixed(2),
		InrAmount:           inrAmount,
		BankFee:             bankFee,
		GST:                 gst,
		TCS:                 tcs,
		TotalPayable:        inrAmount.Add(bankFee).Add(gst).Add(tcs),
	}, nil
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
