package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a recorded market rate snapshot for a currency pair on a given day.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Source           string          `json:"source"`
	AuditFields
}
