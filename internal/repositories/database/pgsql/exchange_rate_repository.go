package pgsql

import (
	"context"
	"strings"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/fxdesk/remittance_backend/internal/models"
	"github.com/fxdesk/remittance_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository records live rate snapshots.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateSelectQuery = `
SELECT
	exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, source,
	created_at, created_by, last_updated_at, last_updated_by
FROM exchange_rates
`

// SaveExchangeRate inserts the day's snapshot or overwrites the rate if one is already recorded.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrencyCode)
	toCurrency := strings.ToUpper(rate.ToCurrencyCode)
	if fromCurrency == toCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	m := mapping.ToModelExchangeRate(rate)
	m.FromCurrencyCode = fromCurrency
	m.ToCurrencyCode = toCurrency
	m.DateEffective = rate.DateEffective.UTC().Truncate(24 * time.Hour)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, source,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode, m.Rate, m.DateEffective, m.Source,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// FindExchangeRate retrieves the most recent snapshot, falling back to the inverse pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	if fromCurrency == toCurrency {
		return &domain.ExchangeRate{
			FromCurrencyCode: fromCurrency,
			ToCurrencyCode:   toCurrency,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    time.Now().UTC().Truncate(24 * time.Hour),
		}, nil
	}

	direct, err := r.latest(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}
	if direct != nil {
		return direct, nil
	}

	inverse, err := r.latest(ctx, toCurrency, fromCurrency)
	if err != nil {
		return nil, err
	}
	if inverse != nil && !inverse.Rate.IsZero() {
		inverse.FromCurrencyCode = fromCurrency
		inverse.ToCurrencyCode = toCurrency
		inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
		return inverse, nil
	}

	return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + fromCurrency + " to " + toCurrency)
}

// latest returns nil without error when no snapshot exists.
func (r *PgxExchangeRateRepository) latest(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	rates, err := r.list(ctx, `
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1`, from, to)
	if err != nil || len(rates) == 0 {
		return nil, err
	}
	return &rates[0], nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = 30
	}
	to := strings.ToUpper(toCurrencyCode)
	if fromCurrencyCode == "" {
		return r.list(ctx, "WHERE to_currency_code = $1 ORDER BY date_effective DESC, from_currency_code LIMIT $2", to, limit)
	}
	return r.list(ctx, `
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC LIMIT $3`, strings.ToUpper(fromCurrencyCode), to, limit)
}

func (r *PgxExchangeRateRepository) list(ctx context.Context, filter string, args ...any) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, exchangeRateSelectQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exchange rates", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan exchange rates", err)
	}
	out := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainExchangeRate(m)
	}
	return out, nil
}
