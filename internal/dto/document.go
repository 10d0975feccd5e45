package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// MaxDocumentSize is the largest upload we issue credentials for.
const MaxDocumentSize = 10 << 20

// PresignRequest asks for a write credential for one object.
type PresignRequest struct {
	FileName string `json:"fileName" binding:"required,max=200"`
	FileType string `json:"fileType" binding:"required,oneof=application/pdf image/png image/jpeg"`
	Folder   string `json:"folder" binding:"required,max=200"`
}

// PresignResponse returns the upload URL and the public URL of the object once uploaded.
type PresignResponse struct {
	PresignedURL  string    `json:"presignedUrl"`
	CloudFrontURL string    `json:"cloudFrontUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// CreateDocumentRequest records metadata for an uploaded object.
type CreateDocumentRequest struct {
	Role     domain.DocumentRole `json:"role" binding:"required,oneof=SENDER ORDER"`
	UserID   string              `json:"userId" binding:"required"`
	Type     string              `json:"type" binding:"required,max=64"`
	ImageURL string              `json:"imageUrl" binding:"required,url"`
	OrderID  string              `json:"orderId" binding:"required,uuid"`
	Name     string              `json:"name" binding:"required,max=200"`
	Comment  string              `json:"comment" binding:"max=2000"`
	FileSize int64               `json:"fileSize" binding:"min=0,max=10485760"`
}

// UpdateDocumentRequest changes the display name or comment.
type UpdateDocumentRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// DocumentResponse defines data returned for a document.
type DocumentResponse struct {
	DocumentID string              `json:"documentID"`
	Role       domain.DocumentRole `json:"role"`
	UserID     string              `json:"userId"`
	Type       string              `json:"type"`
	ImageURL   string              `json:"imageUrl"`
	OrderID    string              `json:"orderId"`
	Name       string              `json:"name"`
	UploadedBy string              `json:"uploadedBy"`
	Comment    string              `json:"comment"`
	FileSize   int64               `json:"fileSize"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ToDocumentResponse converts domain.Document to DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		Role:       d.Role,
		UserID:     d.UserID,
		Type:       d.Type,
		ImageURL:   d.ImageURL,
		OrderID:    d.OrderID,
		Name:       d.Name,
		UploadedBy: d.UploadedBy,
		Comment:    d.Comment,
		FileSize:   d.FileSize,
		CreatedAt:  d.CreatedAt,
	}
}

// ListDocumentsResponse wraps the documents of an order.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of domain.Document to DTO.
func ToListDocumentsResponse(ds []domain.Document) ListDocumentsResponse {
	list := make([]DocumentResponse, len(ds))
	for i := range ds {
		list[i] = ToDocumentResponse(&ds[i])
	}
	return ListDocumentsResponse{Documents: list}
}
