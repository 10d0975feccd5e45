package domain

import (
	"net/url"
	"path"
	"strings"
)

// DocumentRole tags what a document is attached to.
type DocumentRole string

const (
	DocumentRoleSender DocumentRole = "SENDER"
	DocumentRoleOrder  DocumentRole = "ORDER"
)

// IsValid reports whether r is a known document role.
func (r DocumentRole) IsValid() bool {
	return r == DocumentRoleSender || r == DocumentRoleOrder
}

// DocumentTypeA2Form is the type recorded for generated A2 forms.
const DocumentTypeA2Form = "A2_FORM"

// Document is metadata pointing at an uploaded object behind the CDN.
type Document struct {
	DocumentID string       `json:"documentID"`
	Role       DocumentRole `json:"role"`
	UserID     string       `json:"userID"` // Owner reference, e.g. the sender id for SENDER documents
	Type       string       `json:"type"`
	ImageURL   string       `json:"imageUrl"` // CloudFront URL
	OrderID    string       `json:"orderID"`
	Name       string       `json:"name"`
	UploadedBy string       `json:"uploadedBy"`
	Comment    string       `json:"comment"`
	FileSize   int64        `json:"fileSize"`
	AuditFields
}

// IsCDNURL reports whether raw addresses an object below the CDN base URL.
// Scheme and host must match base exactly; an empty or malformed base matches nothing.
func IsCDNURL(base, raw string) bool {
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || b.Scheme == "" || b.Host == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.User != nil || u.Opaque != "" {
		return false
	}
	if !strings.EqualFold(u.Scheme, b.Scheme) || !strings.EqualFold(u.Host, b.Host) {
		return false
	}
	prefix := strings.TrimRight(b.Path, "/") + "/"
	return u.Path != "" && strings.HasPrefix(path.Clean(u.Path), prefix)
}
