// Package gateways declares the outbound collaborators the services depend on.
package gateways

import (
	"context"
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource returns the current market mid-rate for a currency pair or an error.
type RateSource interface {
	GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	// Name identifies the source on stored snapshots.
	Name() string
}

// PresignedUpload is a time-limited write credential for one object.
type PresignedUpload struct {
	Key           string
	PresignedURL  string
	CloudFrontURL string
	ExpiresAt     time.Time
}

// ObjectStorage issues write credentials and public URLs for stored objects.
type ObjectStorage interface {
	PresignPut(ctx context.Context, folder, fileName, contentType string) (*PresignedUpload, error)
}

// ObjectTransfer moves bytes to and from URLs.
type ObjectTransfer interface {
	// Upload PUTs body to a presigned URL.
	Upload(ctx context.Context, url, contentType string, body []byte) error
	// Download GETs the object at url.
	Download(ctx context.Context, url string) ([]byte, error)
}

// Mailer delivers an email.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// FieldValue is one piece of text placed on the A2 form.
type FieldValue struct {
	Name  string
	Value string
}

// A2Renderer overlays field values onto the A2 form template and returns the PDF bytes.
type A2Renderer interface {
	Render(ctx context.Context, fields []FieldValue) ([]byte, error)
}

// EventTracker records product analytics events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
