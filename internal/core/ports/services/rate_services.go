package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSvcFacade wraps the live rate source with snapshot recording and pricing.
type RateSvcFacade interface {
	// GetLiveRate returns the current market rate from -> to.
	GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	// Quote fetches the live rate for input's currency and prices it.
	// A failed fetch returns the error and never prices with a zero or stale rate.
	Quote(ctx context.Context, input domain.FinancialInput) (*domain.CalculatedValues, error)
	// ListSnapshots returns recorded INR rates, newest first.
	ListSnapshots(ctx context.Context, from string, limit int) ([]domain.ExchangeRate, error)
}
