package pgsql

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/fxdesk/remittance_backend/internal/models"
	"github.com/fxdesk/remittance_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBeneficiaryRepository struct {
	BaseRepository
}

func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepositoryFacade {
	return &PgxBeneficiaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)

const beneficiarySelectQuery = `
SELECT
	beneficiary_id, organisation_id, name, address, country, bank_name, bank_address,
	account_number, swift_code, iban, routing_code,
	intermediary_bank_name, intermediary_swift, intermediary_account,
	created_at, created_by, last_updated_at, last_updated_by
FROM beneficiaries
`

func (r *PgxBeneficiaryRepository) query(ctx context.Context, filter string, args ...any) ([]domain.Beneficiary, error) {
	rows, err := r.Pool.Query(ctx, beneficiarySelectQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query beneficiaries", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Beneficiary])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan beneficiaries", err)
	}
	out := make([]domain.Beneficiary, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainBeneficiary(m)
	}
	return out, nil
}

func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	bs, err := r.query(ctx, "WHERE beneficiary_id = $1", beneficiaryID)
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, apperrors.NewNotFoundError("beneficiary " + beneficiaryID + " not found")
	}
	return &bs[0], nil
}

func (r *PgxBeneficiaryRepository) ListBeneficiaries(ctx context.Context, organisationID *string, limit, offset int) ([]domain.Beneficiary, error) {
	if limit <= 0 {
		limit = 20
	}
	if organisationID == nil {
		return r.query(ctx, "ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	}
	return r.query(ctx, "WHERE organisation_id = $1 ORDER BY name LIMIT $2 OFFSET $3", *organisationID, limit, offset)
}

func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(b)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO beneficiaries (
			beneficiary_id, organisation_id, name, address, country, bank_name, bank_address,
			account_number, swift_code, iban, routing_code,
			intermediary_bank_name, intermediary_swift, intermediary_account,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.BeneficiaryID, m.OrganisationID, m.Name, m.Address, m.Country, m.BankName, m.BankAddress,
		m.AccountNumber, m.SwiftCode, m.IBAN, m.RoutingCode,
		m.IntermediaryBankName, m.IntermediarySwift, m.IntermediaryAccount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "beneficiary")
	}
	return nil
}

func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(b)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries SET
			name = $1, address = $2, country = $3, bank_name = $4, bank_address = $5,
			account_number = $6, swift_code = $7, iban = $8, routing_code = $9,
			intermediary_bank_name = $10, intermediary_swift = $11, intermediary_account = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE beneficiary_id = $15`,
		m.Name, m.Address, m.Country, m.BankName, m.BankAddress,
		m.AccountNumber, m.SwiftCode, m.IBAN, m.RoutingCode,
		m.IntermediaryBankName, m.IntermediarySwift, m.IntermediaryAccount,
		m.LastUpdatedAt, m.LastUpdatedBy, m.BeneficiaryID,
	)
	if err != nil {
		return mapWriteError(err, "beneficiary")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("beneficiary " + b.BeneficiaryID + " not found")
	}
	return nil
}
