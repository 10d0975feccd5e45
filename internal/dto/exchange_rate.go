package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LiveRateResponse is the current market rate for a pair.
type LiveRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}

// ListExchangeRatesParams filters the recorded snapshots.
type ListExchangeRatesParams struct {
	From  string `form:"from" binding:"omitempty,len=3"`
	Limit int    `form:"limit,default=30" binding:"min=0,max=365"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Source           string          `json:"source"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		Source:           rate.Source,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
