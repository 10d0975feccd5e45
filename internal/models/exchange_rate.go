package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores a market rate snapshot for a currency pair on a given day.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	DateEffective    time.Time       `db:"date_effective"`
	Source           string          `db:"source"`
	AuditFields
}
