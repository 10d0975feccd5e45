package a2form

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/go-resty/resty/v2"
)

// Renderer overlays field values onto the pages of a template PDF.
type Renderer struct {
	layout      Layout
	templateRef string
	http        *resty.Client
}

var _ gateways.A2Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer. templateRef is an http(s) URL or a local file path.
func NewRenderer(layout Layout, templateRef string, client *resty.Client) *Renderer {
	if client == nil {
		client = resty.New()
	}
	return &Renderer{layout: layout, templateRef: templateRef, http: client}
}

// Render produces the filled form. Values for fields missing from the layout are ignored.
func (r *Renderer) Render(ctx context.Context, fields []gateways.FieldValue) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tpl, err := r.loadTemplate(ctx)
	if err != nil {
		logger.Error("Failed to load A2 template", slog.String("template", r.templateRef), slog.String("error", err.Error()))
		return nil, err
	}

	out, err := r.overlay(tpl, fields)
	if err != nil {
		logger.Error("Failed to render A2 form", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to render A2 form: %w", err)
	}
	return out, nil
}

func (r *Renderer) loadTemplate(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(r.templateRef, "http://") || strings.HasPrefix(r.templateRef, "https://") {
		resp, err := r.http.R().SetContext(ctx).Get(r.templateRef)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to download A2 template", err)
		}
		if resp.IsError() {
			return nil, apperrors.NewUpstreamError(fmt.Sprintf("A2 template download failed with status %d", resp.StatusCode()), nil)
		}
		return resp.Body(), nil
	}

	b, err := os.ReadFile(r.templateRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read A2 template: %w", err)
	}
	return b, nil
}

func (r *Renderer) overlay(tpl []byte, fields []gateways.FieldValue) (out []byte, err error) {
	// gofpdi panics on malformed input
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("template could not be imported: %v", rec)
		}
	}()

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Value
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(tpl))

	lineHeight := r.layout.Font.Size * 1.2
	for page := 1; page <= r.layout.Pages; page++ {
		tplID := importer.ImportPageFromStream(pdf, &rs, page, "/MediaBox")
		if pdf.Err() {
			return nil, pdf.Error()
		}
		w, h := pageSize(importer, page)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		importer.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
		pdf.SetFont(r.layout.Font.Family, "", r.layout.Font.Size)

		for _, pos := range r.layout.Fields {
			text := strings.TrimSpace(values[pos.Name])
			if pos.Page != page || text == "" {
				continue
			}
			if pos.Width > 0 {
				pdf.SetXY(pos.X, pos.Y-r.layout.Font.Size)
				pdf.MultiCell(pos.Width, lineHeight, tr(text), "", "L", false)
				continue
			}
			pdf.Text(pos.X, pos.Y, tr(text))
		}
	}
	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageSize returns the imported page's MediaBox size, falling back to A4.
func pageSize(importer *gofpdi.Importer, page int) (float64, float64) {
	box, ok := importer.GetPageSizes()[page]["/MediaBox"]
	if !ok || box["w"] <= 0 || box["h"] <= 0 {
		return 595.28, 841.89
	}
	return box["w"], box["h"]
}
