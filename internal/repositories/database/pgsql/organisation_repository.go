package pgsql

import (
	"context"
	"errors"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/fxdesk/remittance_backend/internal/models"
	"github.com/fxdesk/remittance_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganisationRepository struct {
	BaseRepository
}

// newPgxOrganisationRepository creates a new repository for organisation data.
func newPgxOrganisationRepository(pool *pgxpool.Pool) portsrepo.OrganisationRepositoryFacade {
	return &PgxOrganisationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganisationRepositoryFacade = (*PgxOrganisationRepository)(nil)

const organisationSelectQuery = `
SELECT
	organisation_id, name, contact_email, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM organisations
`

func (r *PgxOrganisationRepository) getOrganisations(ctx context.Context, filterQuery string, args ...any) ([]domain.Organisation, error) {
	rows, err := r.Pool.Query(ctx, organisationSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organisations", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Organisation])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect organisation rows", err)
	}
	out := make([]domain.Organisation, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainOrganisation(m)
	}
	return out, nil
}

func (r *PgxOrganisationRepository) FindOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error) {
	orgs, err := r.getOrganisations(ctx, "WHERE organisation_id = $1", organisationID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.NewNotFoundError("organisation " + organisationID + " not found")
	}
	return &orgs[0], nil
}

func (r *PgxOrganisationRepository) ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.getOrganisations(ctx, "ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
}

func (r *PgxOrganisationRepository) SaveOrganisation(ctx context.Context, org domain.Organisation) error {
	m := mapping.ToModelOrganisation(org)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO organisations (
			organisation_id, name, contact_email, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.OrganisationID, m.Name, m.ContactEmail, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "organisation")
	}
	return nil
}

func (r *PgxOrganisationRepository) UpdateOrganisation(ctx context.Context, org domain.Organisation) error {
	m := mapping.ToModelOrganisation(org)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE organisations
		SET name = $1, contact_email = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organisation_id = $6;
	`, m.Name, m.ContactEmail, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.OrganisationID)
	if err != nil {
		return mapWriteError(err, "organisation")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("organisation " + org.OrganisationID + " not found")
	}
	return nil
}

// isNoRows is shared by repositories scanning a single row.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
