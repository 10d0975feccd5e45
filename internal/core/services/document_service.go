package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/validation"
	"github.com/google/uuid"
)

// allowedUploadTypes are the content types we issue upload credentials for.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

type documentService struct {
	BaseService
	docRepo    portsrepo.DocumentRepositoryFacade
	orders     portssvc.OrderReaderSvc
	storage    gateways.ObjectStorage
	cdnBaseURL string
}

// NewDocumentService creates the document service. Order visibility rules come from orders.
// Only documents served from cdnBaseURL can be recorded.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, orders portssvc.OrderReaderSvc, storage gateways.ObjectStorage, cdnBaseURL string) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, orders: orders, storage: storage, cdnBaseURL: cdnBaseURL}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) Presign(ctx context.Context, actor domain.Principal, req dto.PresignRequest) (*gateways.PresignedUpload, error) {
	if !allowedUploadTypes[req.FileType] {
		return nil, apperrors.NewValidationError("file type " + req.FileType + " is not allowed")
	}
	folder := strings.Trim(path.Clean("/"+strings.TrimSpace(req.Folder)), "/")
	if folder == "" || folder == "." {
		return nil, apperrors.NewValidationError("folder is required")
	}
	if strings.TrimSpace(req.FileName) == "" {
		return nil, apperrors.NewValidationError("file name is required")
	}

	upload, err := s.storage.PresignPut(ctx, folder, req.FileName, req.FileType)
	if err != nil {
		s.LogError(ctx, err, "Failed to presign upload", slog.String("folder", folder))
		return nil, fmt.Errorf("failed to obtain presigned URL: %w", err)
	}
	s.LogDebug(ctx, "Issued upload credential", slog.String("key", upload.Key), slog.String("user_id", actor.UserID))
	return upload, nil
}

func (s *documentService) CreateDocument(ctx context.Context, actor domain.Principal, req dto.CreateDocumentRequest) (*domain.Document, error) {
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role must be SENDER or ORDER")
	}
	if req.FileSize < 0 || req.FileSize > dto.MaxDocumentSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("file size must be between 0 and %d bytes", dto.MaxDocumentSize))
	}
	if !domain.IsCDNURL(s.cdnBaseURL, req.ImageURL) {
		s.LogInfo(ctx, "Rejected document outside the CDN", slog.String("image_url", req.ImageURL), slog.String("user_id", actor.UserID))
		return nil, apperrors.NewValidationError("imageUrl must point to an uploaded object on the CDN")
	}
	if _, err := s.orders.GetOrder(ctx, actor, req.OrderID); err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		Role:        req.Role,
		UserID:      strings.TrimSpace(req.UserID),
		Type:        strings.TrimSpace(req.Type),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		OrderID:     req.OrderID,
		Name:        validation.SanitizeText(req.Name),
		UploadedBy:  actor.UserID,
		Comment:     validation.SanitizeText(req.Comment),
		FileSize:    req.FileSize,
		AuditFields: newAudit(actor.UserID),
	}
	if doc.Name == "" {
		return nil, apperrors.NewValidationError("document name is required")
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("order_id", doc.OrderID))
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}
	s.LogInfo(ctx, "Document recorded", slog.String("document_id", doc.DocumentID), slog.String("order_id", doc.OrderID))
	return &doc, nil
}

// accessibleDocument loads a document whose order actor may see.
func (s *documentService) accessibleDocument(ctx context.Context, actor domain.Principal, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if _, err := s.orders.GetOrder(ctx, actor, doc.OrderID); err != nil {
		return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return doc, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, actor domain.Principal, documentID string, req dto.UpdateDocumentRequest) (*domain.Document, error) {
	doc, err := s.accessibleDocument(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}

	updated := *doc
	changed := false
	if req.Name != nil {
		name := validation.SanitizeText(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("document name cannot be empty")
		}
		if name != updated.Name {
			updated.Name = name
			changed = true
		}
	}
	if req.Comment != nil {
		if comment := validation.SanitizeText(*req.Comment); comment != updated.Comment {
			updated.Comment = comment
			changed = true
		}
	}
	if !changed {
		return doc, nil
	}

	touch(&updated.AuditFields, actor.UserID)
	if err := s.docRepo.UpdateDocument(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return &updated, nil
}

// DeleteDocument removes the metadata row. The stored object is left in the bucket.
func (s *documentService) DeleteDocument(ctx context.Context, actor domain.Principal, documentID string) error {
	if _, err := s.accessibleDocument(ctx, actor, documentID); err != nil {
		return err
	}
	if err := s.docRepo.DeleteDocument(ctx, documentID); err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID), slog.String("deleted_by", actor.UserID))
	return nil
}

func (s *documentService) ListOrderDocuments(ctx context.Context, actor domain.Principal, orderID string) ([]domain.Document, error) {
	if _, err := s.orders.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListDocumentsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents of order %s: %w", orderID, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}
