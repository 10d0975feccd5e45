package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/utils/forms"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	pdfContentType = "application/pdf"
	zipContentType = "application/zip"

	defaultDownloadTimeout = 30 * time.Second
)

// SettlementConfig holds the addresses and limits of the document pipelines.
type SettlementConfig struct {
	OpsEmail        string
	PartnerEmail    string
	DownloadTimeout time.Duration
	// CDNBaseURL bounds which document URLs the partner pipeline will fetch.
	CDNBaseURL string
}

// SettlementDeps groups the outbound collaborators of the document pipelines.
type SettlementDeps struct {
	Renderer gateways.A2Renderer
	Storage  gateways.ObjectStorage
	Transfer gateways.ObjectTransfer
	Mailer   gateways.Mailer
	Events   gateways.EventTracker
}

type settlementService struct {
	BaseService
	cfg             SettlementConfig
	orderRepo       portsrepo.OrderRepositoryFacade
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
	docRepo         portsrepo.DocumentRepositoryFacade
	deps            SettlementDeps
	now             func() time.Time
}

// NewSettlementService creates the service running the A2 and forex-partner pipelines.
func NewSettlementService(
	cfg SettlementConfig,
	orderRepo portsrepo.OrderRepositoryFacade,
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade,
	docRepo portsrepo.DocumentRepositoryFacade,
	deps SettlementDeps,
) portssvc.SettlementSvcFacade {
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = defaultDownloadTimeout
	}
	if deps.Events == nil {
		deps.Events = noopTracker{}
	}
	return &settlementService{
		cfg:             cfg,
		orderRepo:       orderRepo,
		beneficiaryRepo: beneficiaryRepo,
		docRepo:         docRepo,
		deps:            deps,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// orderBundle is everything the pipelines read about an order.
type orderBundle struct {
	order       *domain.Order
	sender      *domain.Sender
	beneficiary *domain.Beneficiary
}

func (s *settlementService) loadBundle(ctx context.Context, orderID string) (orderBundle, error) {
	var b orderBundle
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return b, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	b.order = order

	sender, err := s.orderRepo.FindSenderByOrderID(ctx, orderID)
	if err != nil {
		return b, fmt.Errorf("failed to load sender of order %s: %w", orderID, err)
	}
	b.sender = sender

	if order.BeneficiaryID != nil {
		beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, *order.BeneficiaryID)
		switch {
		case err == nil:
			b.beneficiary = beneficiary
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogInfo(ctx, "Order references a missing beneficiary", slog.String("order_id", orderID), slog.String("beneficiary_id", *order.BeneficiaryID))
		default:
			return b, fmt.Errorf("failed to load beneficiary of order %s: %w", orderID, err)
		}
	}
	return b, nil
}

// GenerateA2 renders the A2 form, stores it and records it, then always notifies operations.
func (s *settlementService) GenerateA2(ctx context.Context, orderID string, actorID string) domain.SettlementResult {
	var (
		errs []string
		doc  *domain.Document
		pdf  []byte
		name string
	)

	bundle, err := s.loadBundle(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "A2 generation could not load the order", slog.String("order_id", orderID))
		errs = append(errs, err.Error())
	} else {
		name = fmt.Sprintf("A2_Form_%s_%s.pdf", orderID, s.now().Format("2006-01-02"))
		pdf, doc, err = s.produceA2(ctx, bundle, name, actorID)
		if err != nil {
			s.LogError(ctx, err, "A2 generation failed", slog.String("order_id", orderID))
			errs = append(errs, err.Error())
		}
	}

	emailErr := s.notifyOps(ctx, orderID, bundle, doc, pdf, name, errs)
	if emailErr != nil {
		s.LogError(ctx, emailErr, "Failed to send A2 notification", slog.String("order_id", orderID))
		errs = append(errs, emailErr.Error())
	}

	result := domain.SettlementResult{
		Status:    domain.SettlementStatusFor(doc != nil, emailErr == nil),
		Document:  doc,
		EmailSent: emailErr == nil,
		Errors:    errs,
	}
	switch result.Status {
	case domain.SettlementOK:
		result.Detail = "A2 form generated and operations notified"
	case domain.SettlementPartial:
		if doc != nil {
			result.Detail = "A2 form generated but the notification email failed"
		} else {
			result.Detail = "A2 form could not be stored; operations were notified"
		}
	default:
		result.Detail = "A2 form could not be stored and the notification email failed"
	}

	s.deps.Events.Enqueue(actorID, "a2_generated", map[string]any{
		"order_id": orderID,
		"status":   string(result.Status),
	})
	return result
}

// produceA2 renders, uploads and records the form. The rendered bytes are returned even when a later step fails.
func (s *settlementService) produceA2(ctx context.Context, b orderBundle, fileName, actorID string) ([]byte, *domain.Document, error) {
	pdf, err := s.deps.Renderer.Render(ctx, forms.BuildA2Fields(*b.order, *b.sender, b.beneficiary))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render A2 form: %w", err)
	}

	upload, err := s.deps.Storage.PresignPut(ctx, "orders/"+b.order.OrderID+"/a2", fileName, pdfContentType)
	if err != nil {
		return pdf, nil, fmt.Errorf("failed to obtain presigned URL: %w", err)
	}
	if err := s.deps.Transfer.Upload(ctx, upload.PresignedURL, pdfContentType, pdf); err != nil {
		return pdf, nil, fmt.Errorf("failed to upload A2 form: %w", err)
	}

	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		Role:        domain.DocumentRoleSender,
		UserID:      b.sender.SenderID,
		Type:        domain.DocumentTypeA2Form,
		ImageURL:    upload.CloudFrontURL,
		OrderID:     b.order.OrderID,
		Name:        fileName,
		UploadedBy:  actorID,
		FileSize:    int64(len(pdf)),
		AuditFields: newAudit(actorID),
	}
	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		return pdf, nil, fmt.Errorf("failed to save document record: %w", err)
	}
	s.LogInfo(ctx, "A2 form stored", slog.String("order_id", b.order.OrderID), slog.String("document_id", doc.DocumentID))
	return pdf, &doc, nil
}

func (s *settlementService) notifyOps(ctx context.Context, orderID string, b orderBundle, doc *domain.Document, pdf []byte, fileName string, errs []string) error {
	html, err := renderEmail(opsA2Template, opsA2EmailData{
		OrderID:     orderID,
		Order:       b.order,
		Sender:      b.sender,
		Beneficiary: b.beneficiary,
		Document:    doc,
		Errors:      errs,
	})
	if err != nil {
		return err
	}

	email := domain.Email{
		To:      []string{s.cfg.OpsEmail},
		Subject: "A2 form for order " + orderID,
		HTML:    html,
	}
	if len(pdf) > 0 {
		email.Attachments = []domain.Attachment{{Filename: fileName, ContentType: pdfContentType, Data: pdf}}
	}
	if err := s.deps.Mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send operations email: %w", err)
	}
	return nil
}

type downloadResult struct {
	doc  domain.Document
	data []byte
	err  error
}

// SendToForexPartner zips whatever documents can be downloaded and emails them to the partner.
func (s *settlementService) SendToForexPartner(ctx context.Context, orderID string, documentIDs []string, actorID string) domain.SettlementResult {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Forex partner send could not load the order", slog.String("order_id", orderID))
		return domain.SettlementResult{
			Status: domain.SettlementFailed,
			Detail: "order could not be loaded; nothing was sent",
			Errors: []string{fmt.Sprintf("failed to load order %s: %v", orderID, err)},
		}
	}

	var errs []string
	docs, skipped, err := s.resolveDocuments(ctx, orderID, documentIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve documents", slog.String("order_id", orderID))
		errs = append(errs, err.Error())
	}

	results := s.downloadAll(ctx, docs)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int, len(results))
	var included []string
	for _, r := range results {
		if r.err != nil {
			s.LogError(ctx, r.err, "Skipping document that failed to download", slog.String("document_id", r.doc.DocumentID))
			skipped = append(skipped, r.doc.Name)
			errs = append(errs, r.err.Error())
			continue
		}
		entry := uniqueEntryName(entryName(r.doc), used)
		w, err := zw.Create(entry)
		if err == nil {
			_, err = w.Write(r.data)
		}
		if err != nil {
			skipped = append(skipped, r.doc.Name)
			errs = append(errs, fmt.Sprintf("failed to add %s to archive: %v", entry, err))
			continue
		}
		included = append(included, entry)
	}
	if err := zw.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to finish archive: %v", err))
		included = nil
	}

	emailErr := s.mailPartner(ctx, order, buf.Bytes(), included, skipped)
	if emailErr != nil {
		s.LogError(ctx, emailErr, "Failed to email forex partner", slog.String("order_id", orderID))
		errs = append(errs, emailErr.Error())
	}

	allIncluded := len(included) > 0 && len(skipped) == 0
	result := domain.SettlementResult{
		Status:    domain.SettlementStatusFor(allIncluded, emailErr == nil),
		EmailSent: emailErr == nil,
		Errors:    errs,
		Included:  included,
		Skipped:   skipped,
	}
	switch {
	case emailErr != nil:
		result.Detail = "the forex partner email could not be sent"
	case len(included) == 0:
		result.Detail = "no documents could be retrieved; the partner was notified without attachments"
	case len(skipped) > 0:
		result.Detail = fmt.Sprintf("sent %d documents, %d skipped", len(included), len(skipped))
	default:
		result.Detail = fmt.Sprintf("sent %d documents to the forex partner", len(included))
	}

	s.deps.Events.Enqueue(actorID, "documents_sent_to_partner", map[string]any{
		"order_id": orderID,
		"status":   string(result.Status),
		"included": len(included),
		"skipped":  len(skipped),
	})
	s.LogInfo(ctx, "Forex partner pipeline finished", slog.String("order_id", orderID), slog.String("status", string(result.Status)))
	return result
}

// resolveDocuments returns the documents to send. Requested ids that are unknown or belong to another order are skipped.
func (s *settlementService) resolveDocuments(ctx context.Context, orderID string, documentIDs []string) ([]domain.Document, []string, error) {
	if len(documentIDs) == 0 {
		docs, err := s.docRepo.ListDocumentsByOrder(ctx, orderID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list documents of order %s: %w", orderID, err)
		}
		docs, skipped := s.keepCDNDocuments(ctx, docs)
		return docs, skipped, nil
	}

	var docs []domain.Document
	var skipped []string
	seen := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		doc, err := s.docRepo.FindDocumentByID(ctx, id)
		if err != nil {
			s.LogInfo(ctx, "Requested document not found", slog.String("document_id", id), slog.String("error", err.Error()))
			skipped = append(skipped, id)
			continue
		}
		if doc.OrderID != orderID {
			s.LogInfo(ctx, "Requested document belongs to another order", slog.String("document_id", id), slog.String("order_id", orderID))
			skipped = append(skipped, id)
			continue
		}
		docs = append(docs, *doc)
	}
	docs, offCDN := s.keepCDNDocuments(ctx, docs)
	return docs, append(skipped, offCDN...), nil
}

// keepCDNDocuments drops documents whose URL is not on the CDN and returns their names as skipped.
func (s *settlementService) keepCDNDocuments(ctx context.Context, docs []domain.Document) ([]domain.Document, []string) {
	kept := make([]domain.Document, 0, len(docs))
	var skipped []string
	for _, doc := range docs {
		if !domain.IsCDNURL(s.cfg.CDNBaseURL, doc.ImageURL) {
			s.LogInfo(ctx, "Skipping document outside the CDN", slog.String("document_id", doc.DocumentID), slog.String("image_url", doc.ImageURL))
			skipped = append(skipped, doc.Name)
			continue
		}
		kept = append(kept, doc)
	}
	return kept, skipped
}

// downloadAll fetches every document concurrently and waits for all of them. Results keep input order.
func (s *settlementService) downloadAll(ctx context.Context, docs []domain.Document) []downloadResult {
	results := make([]downloadResult, len(docs))
	var g errgroup.Group
	for i, doc := range docs {
		results[i].doc = doc
		g.Go(func() error {
			dctx, cancel := context.WithTimeout(ctx, s.cfg.DownloadTimeout)
			defer cancel()
			data, err := s.deps.Transfer.Download(dctx, doc.ImageURL)
			if err != nil {
				results[i].err = fmt.Errorf("failed to download %s: %w", doc.Name, err)
				return nil
			}
			results[i].data = data
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *settlementService) mailPartner(ctx context.Context, order *domain.Order, archive []byte, included, skipped []string) error {
	html, err := renderEmail(partnerTemplate, partnerEmailData{
		OrderID:  order.OrderID,
		Order:    order,
		Included: included,
		Skipped:  skipped,
	})
	if err != nil {
		return err
	}

	email := domain.Email{
		To:      []string{s.cfg.PartnerEmail},
		Subject: "Remittance documents for order " + order.OrderID,
		HTML:    html,
	}
	if s.cfg.OpsEmail != "" {
		email.CC = []string{s.cfg.OpsEmail}
	}
	if len(included) > 0 {
		email.Attachments = []domain.Attachment{{
			Filename:    fmt.Sprintf("Order_%s_documents.zip", order.OrderID),
			ContentType: zipContentType,
			Data:        archive,
		}}
	}
	if err := s.deps.Mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send forex partner email: %w", err)
	}
	return nil
}

// entryName picks the archive name of a document, borrowing the extension from its URL when the name has none.
func entryName(doc domain.Document) string {
	name := strings.TrimSpace(filepath.Base(filepath.Clean("/" + doc.Name)))
	if name == "" || name == "/" || name == "." {
		name = doc.DocumentID
	}
	if path.Ext(name) == "" {
		if u, err := url.Parse(doc.ImageURL); err == nil {
			name += path.Ext(u.Path)
		}
	}
	return name
}

// uniqueEntryName suffixes repeated names as "name (2).ext".
func uniqueEntryName(name string, used map[string]int) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	candidate := fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n+1, ext)
	if used[candidate] > 0 {
		return uniqueEntryName(candidate, used)
	}
	used[candidate] = 1
	return candidate
}
