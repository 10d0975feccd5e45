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

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentSelectQuery = `
SELECT
	document_id, role, user_id, type, image_url, order_id, name, uploaded_by, comment, file_size,
	created_at, created_by, last_updated_at, last_updated_by
FROM documents
`

func (r *PgxDocumentRepository) query(ctx context.Context, filter string, args ...any) ([]domain.Document, error) {
	rows, err := r.Pool.Query(ctx, documentSelectQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan documents", err)
	}
	out := make([]domain.Document, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainDocument(m)
	}
	return out, nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	docs, err := r.query(ctx, "WHERE document_id = $1", documentID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return &docs[0], nil
}

func (r *PgxDocumentRepository) ListDocumentsByOrder(ctx context.Context, orderID string) ([]domain.Document, error) {
	return r.query(ctx, "WHERE order_id = $1 ORDER BY created_at", orderID)
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO documents (
			document_id, role, user_id, type, image_url, order_id, name, uploaded_by, comment, file_size,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.DocumentID, m.Role, m.UserID, m.Type, m.ImageURL, m.OrderID, m.Name, m.UploadedBy, m.Comment, m.FileSize,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "document")
	}
	return nil
}

func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE documents SET name = $1, comment = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $5`,
		doc.Name, doc.Comment, doc.LastUpdatedAt, doc.LastUpdatedBy, doc.DocumentID,
	)
	if err != nil {
		return mapWriteError(err, "document")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + doc.DocumentID + " not found")
	}
	return nil
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return nil
}
