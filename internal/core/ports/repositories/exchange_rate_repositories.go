package repositories

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate snapshots
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the most recent snapshot for a currency pair.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves snapshots into toCurrencyCode, newest first. An empty from matches every currency.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate snapshots
type ExchangeRateWriter interface {
	// SaveExchangeRate upserts the snapshot for the pair and day.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
