package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// snapshotActor is recorded as creator of automatically captured rate snapshots.
const snapshotActor = "system"

// rateService provides live rates, snapshots and quotes.
type rateService struct {
	BaseService
	source   gateways.RateSource
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	policy   pricing.TCSPolicy
}

// NewRateService creates the rate service. policy holds the TCS slabs used for quotes.
func NewRateService(source gateways.RateSource, rateRepo portsrepo.ExchangeRateRepositoryFacade, policy pricing.TCSPolicy) portssvc.RateSvcFacade {
	return &rateService{source: source, rateRepo: rateRepo, policy: policy}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetLiveRate fetches the current rate and records a daily snapshot. Snapshot failures are only logged.
func (s *rateService) GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if len(from) != 3 || len(to) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if from == to {
		return decimal.Zero, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	rate, err := s.source.GetLiveRate(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch live rate", slog.String("from", from), slog.String("to", to))
		return decimal.Zero, fmt.Errorf("failed to get live rate %s/%s: %w", from, to, err)
	}

	snapshot := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		DateEffective:    time.Now().UTC(),
		Source:           s.source.Name(),
		AuditFields:      newAudit(snapshotActor),
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to record exchange rate snapshot", slog.String("from", from), slog.String("to", to))
	}

	return rate, nil
}

func (s *rateService) Quote(ctx context.Context, input domain.FinancialInput) (*domain.CalculatedValues, error) {
	rate, err := s.GetLiveRate(ctx, input.CurrencyCode, domain.BaseCurrency)
	if err != nil {
		return nil, err
	}

	values, err := pricing.ComputeFinancials(input, rate, s.policy)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Quote computed",
		slog.String("currency", input.CurrencyCode),
		slog.String("market_rate", rate.String()),
		slog.String("total_payable", values.TotalPayable.String()))
	return &values, nil
}

func (s *rateService) ListSnapshots(ctx context.Context, from string, limit int) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(from), domain.BaseCurrency, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, nil
}
