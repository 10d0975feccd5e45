package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/dto"
)

// DocumentSvcFacade manages upload credentials and document metadata.
type DocumentSvcFacade interface {
	Presign(ctx context.Context, actor domain.Principal, req dto.PresignRequest) (*gateways.PresignedUpload, error)
	CreateDocument(ctx context.Context, actor domain.Principal, req dto.CreateDocumentRequest) (*domain.Document, error)
	UpdateDocument(ctx context.Context, actor domain.Principal, documentID string, req dto.UpdateDocumentRequest) (*domain.Document, error)
	DeleteDocument(ctx context.Context, actor domain.Principal, documentID string) error
	ListOrderDocuments(ctx context.Context, actor domain.Principal, orderID string) ([]domain.Document, error)
}
