// Package transfer moves object bytes over plain HTTP: presigned PUT uploads and CDN downloads.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/go-resty/resty/v2"
)

// HTTPTransfer implements gateways.ObjectTransfer with resty.
type HTTPTransfer struct {
	client *resty.Client
}

var _ gateways.ObjectTransfer = (*HTTPTransfer)(nil)

// NewHTTPTransfer creates a transfer client; timeout bounds each request.
func NewHTTPTransfer(timeout time.Duration) *HTTPTransfer {
	return &HTTPTransfer{client: resty.New().SetTimeout(timeout)}
}

// Upload PUTs body to url with the given content type.
func (t *HTTPTransfer) Upload(ctx context.Context, url, contentType string, body []byte) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Put(url)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Upload request failed", slog.String("error", err.Error()))
		return apperrors.NewUpstreamError("upload request failed", err)
	}
	if resp.IsError() {
		return apperrors.NewUpstreamError(fmt.Sprintf("upload rejected with status %d", resp.StatusCode()), nil)
	}
	return nil
}

// Download GETs url and returns the body.
func (t *HTTPTransfer) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := t.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, apperrors.NewUpstreamError("download request failed", err)
	}
	if resp.IsError() {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("download failed with status %d", resp.StatusCode()), nil)
	}
	return resp.Body(), nil
}
