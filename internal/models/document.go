package models

// Document is the documents table row.
type Document struct {
	DocumentID string `db:"document_id"`
	Role       string `db:"role"`
	UserID     string `db:"user_id"`
	Type       string `db:"type"`
	ImageURL   string `db:"image_url"`
	OrderID    string `db:"order_id"`
	Name       string `db:"name"`
	UploadedBy string `db:"uploaded_by"`
	Comment    string `db:"comment"`
	FileSize   int64  `db:"file_size"`
	AuditFields
}
