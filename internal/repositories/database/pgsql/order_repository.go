package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/fxdesk/remittance_backend/internal/models"
	"github.com/fxdesk/remittance_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOrderRepository stores orders and their senders.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderSelectQuery = `
SELECT
	order_id, organisation_id, foreign_amount, currency_code, destination_country, purpose_code,
	margin, foreign_bank_charges, education_loan, status, beneficiary_id,
	market_rate, customer_rate, inr_amount, bank_fee, gst, tcs, total_payable,
	created_at, created_by, last_updated_at, last_updated_by
FROM orders
`

const senderSelectQuery = `
SELECT
	sender_id, order_id, name, pan, address, city, state, postal_code, phone, email,
	source_of_funds, relationship_to_student,
	created_at, created_by, last_updated_at, last_updated_by
FROM senders
`

const insertSenderQuery = `
INSERT INTO senders (
	sender_id, order_id, name, pan, address, city, state, postal_code, phone, email,
	source_of_funds, relationship_to_student,
	created_at, created_by, last_updated_at, last_updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

func senderArgs(m models.Sender) []any {
	return []any{
		m.SenderID, m.OrderID, m.Name, m.PAN, m.Address, m.City, m.State, m.PostalCode, m.Phone, m.Email,
		m.SourceOfFunds, m.RelationshipToStudent,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxOrderRepository) SaveOrderWithSender(ctx context.Context, order domain.Order, sender domain.Sender) error {
	o := mapping.ToModelOrder(order)
	s := mapping.ToModelSender(sender)

	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (
				order_id, organisation_id, foreign_amount, currency_code, destination_country, purpose_code,
				margin, foreign_bank_charges, education_loan, status, beneficiary_id,
				created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			o.OrderID, o.OrganisationID, o.ForeignAmount, o.CurrencyCode, o.DestinationCountry, o.PurposeCode,
			o.Margin, o.ForeignBankCharges, o.EducationLoan, o.Status, o.BeneficiaryID,
			o.CreatedAt, o.CreatedBy, o.LastUpdatedAt, o.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "order")
		}
		if _, err := tx.Exec(ctx, insertSenderQuery, senderArgs(s)...); err != nil {
			return mapWriteError(err, "sender")
		}
		return nil
	})
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	rows, err := r.Pool.Query(ctx, orderSelectQuery+"WHERE order_id = $1", orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Order])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("order " + orderID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan order", err)
	}
	o := mapping.ToDomainOrder(m)
	return &o, nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.OrganisationID != nil {
		conds = append(conds, "organisation_id = "+arg(*filter.OrganisationID))
	}
	if filter.Status != "" {
		conds = append(conds, "lower(status) = lower("+arg(filter.Status)+")")
	}
	if filter.After != nil {
		conds = append(conds, fmt.Sprintf("(created_at, order_id) < (%s, %s)", arg(filter.After.CreatedAt), arg(filter.After.ID)))
	}

	query := orderSelectQuery
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += "ORDER BY created_at DESC, order_id DESC LIMIT " + arg(limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list orders", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Order])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan orders", err)
	}
	out := make([]domain.Order, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainOrder(m)
	}
	return out, nil
}

func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	o := mapping.ToModelOrder(order)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE orders SET
			foreign_amount = $1, currency_code = $2, destination_country = $3, purpose_code = $4,
			margin = $5, foreign_bank_charges = $6, education_loan = $7, status = $8, beneficiary_id = $9,
			market_rate = $10, customer_rate = $11, inr_amount = $12, bank_fee = $13, gst = $14,
			tcs = $15, total_payable = $16, last_updated_at = $17, last_updated_by = $18
		WHERE order_id = $19`,
		o.ForeignAmount, o.CurrencyCode, o.DestinationCountry, o.PurposeCode,
		o.Margin, o.ForeignBankCharges, o.EducationLoan, o.Status, o.BeneficiaryID,
		o.MarketRate, o.CustomerRate, o.InrAmount, o.BankFee, o.GST,
		o.TCS, o.TotalPayable, o.LastUpdatedAt, o.LastUpdatedBy,
		o.OrderID,
	)
	if err != nil {
		return mapWriteError(err, "order")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("order " + order.OrderID + " not found")
	}
	return nil
}

func (r *PgxOrderRepository) FindSenderByOrderID(ctx context.Context, orderID string) (*domain.Sender, error) {
	rows, err := r.Pool.Query(ctx, senderSelectQuery+"WHERE order_id = $1", orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sender", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Sender])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("sender for order " + orderID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan sender", err)
	}
	s := mapping.ToDomainSender(m)
	return &s, nil
}

// UpsertSender keeps the original sender id and creation audit on conflict.
func (r *PgxOrderRepository) UpsertSender(ctx context.Context, sender domain.Sender) error {
	s := mapping.ToModelSender(sender)
	_, err := r.Pool.Exec(ctx, insertSenderQuery+`
		ON CONFLICT (order_id) DO UPDATE SET
			name = EXCLUDED.name, pan = EXCLUDED.pan, address = EXCLUDED.address, city = EXCLUDED.city,
			state = EXCLUDED.state, postal_code = EXCLUDED.postal_code, phone = EXCLUDED.phone,
			email = EXCLUDED.email, source_of_funds = EXCLUDED.source_of_funds,
			relationship_to_student = EXCLUDED.relationship_to_student,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		senderArgs(s)...,
	)
	if err != nil {
		return mapWriteError(err, "sender")
	}
	return nil
}
