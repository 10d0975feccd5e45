package repositories

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// DocumentReader defines read operations for document metadata.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByOrder(ctx context.Context, orderID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for document metadata.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	UpdateDocument(ctx context.Context, doc domain.Document) error
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
