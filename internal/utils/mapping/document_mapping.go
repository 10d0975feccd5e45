package mapping

import (
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		Role:        string(d.Role),
		UserID:      d.UserID,
		Type:        d.Type,
		ImageURL:    d.ImageURL,
		OrderID:     d.OrderID,
		Name:        d.Name,
		UploadedBy:  d.UploadedBy,
		Comment:     d.Comment,
		FileSize:    d.FileSize,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		Role:        domain.DocumentRole(m.Role),
		UserID:      m.UserID,
		Type:        m.Type,
		ImageURL:    m.ImageURL,
		OrderID:     m.OrderID,
		Name:        m.Name,
		UploadedBy:  m.UploadedBy,
		Comment:     m.Comment,
		FileSize:    m.FileSize,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
