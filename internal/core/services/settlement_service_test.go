package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	orderRepo       *MockOrderRepository
	beneficiaryRepo *MockBeneficiaryRepository
	docRepo         *MockDocumentRepository
	renderer        *fakeRenderer
	storage         *fakeStorage
	transfer        *fakeTransfer
	mailer          *fakeMailer
	events          *recordingTracker
	service         portssvc.SettlementSvcFacade

	order  *domain.Order
	sender *domain.Sender
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.beneficiaryRepo = new(MockBeneficiaryRepository)
	suite.docRepo = new(MockDocumentRepository)
	suite.renderer = &fakeRenderer{}
	suite.storage = &fakeStorage{}
	suite.transfer = &fakeTransfer{}
	suite.mailer = &fakeMailer{}
	suite.events = &recordingTracker{}
	suite.service = services.NewSettlementService(
		services.SettlementConfig{OpsEmail: "ops@example.com", PartnerEmail: "partner@example.com", DownloadTimeout: time.Second, CDNBaseURL: "https://cdn.example.com"},
		suite.orderRepo, suite.beneficiaryRepo, suite.docRepo,
		services.SettlementDeps{Renderer: suite.renderer, Storage: suite.storage, Transfer: suite.transfer, Mailer: suite.mailer, Events: suite.events},
	)

	benID := "ben-1"
	suite.order = &domain.Order{
		OrderID:            "order-1",
		ForeignAmount:      decimal.NewFromInt(7500),
		CurrencyCode:       "USD",
		DestinationCountry: "US",
		PurposeCode:        "EDUCATION",
		Status:             domain.StatusConfirmed,
		BeneficiaryID:      &benID,
	}
	suite.order.ApplyCalculatedValues(domain.CalculatedValues{
		CustomerRate: decimal.RequireFromString("113.18"),
		InrAmount:    decimal.RequireFromString("848850"),
		TotalPayable: decimal.RequireFromString("850620"),
	})
	suite.sender = &domain.Sender{SenderID: "sender-1", OrderID: "order-1", Name: "Asha Rao", PAN: "ABCDE1234F"}
}

func (suite *SettlementServiceTestSuite) expectBundle() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(suite.order, nil)
	suite.orderRepo.On("FindSenderByOrderID", mock.Anything, "order-1").Return(suite.sender, nil)
	suite.beneficiaryRepo.On("FindBeneficiaryByID", mock.Anything, "ben-1").Return(&domain.Beneficiary{BeneficiaryID: "ben-1", Name: "University", Country: "US"}, nil)
}

// --- GenerateA2 Tests ---
func (suite *SettlementServiceTestSuite) TestGenerateA2_OK() {
	suite.expectBundle()
	suite.docRepo.On("SaveDocument", mock.Anything, mock.MatchedBy(func(d domain.Document) bool {
		return d.Role == domain.DocumentRoleSender && d.UserID == "sender-1" && d.Type == domain.DocumentTypeA2Form &&
			d.FileSize == int64(len("%PDF-1.3 fake a2"))
	})).Return(nil).Once()

	result := suite.service.GenerateA2(context.Background(), "order-1", "actor-1")

	suite.Equal(domain.SettlementOK, result.Status)
	suite.True(result.EmailSent)
	suite.Require().NotNil(result.Document)
	suite.Regexp(`^A2_Form_order-1_\d{4}-\d{2}-\d{2}\.pdf$`, result.Document.Name)
	suite.Contains(result.Document.ImageURL, "https://cdn.example.com/orders/order-1/a2/")
	suite.Len(suite.transfer.uploads, 1)

	suite.Require().Len(suite.mailer.sent, 1)
	email := suite.mailer.sent[0]
	suite.Equal([]string{"ops@example.com"}, email.To)
	suite.Require().Len(email.Attachments, 1)
	suite.Equal("application/pdf", email.Attachments[0].ContentType)
	suite.Contains(email.HTML, "Asha Rao")
	suite.Contains(email.HTML, "8,50,620.00")
	suite.Contains(suite.events.events, "a2_generated")

	names := map[string]bool{}
	for _, f := range suite.renderer.fields {
		names[f.Name] = true
	}
	suite.True(names["beneficiary_name"])
}

func (suite *SettlementServiceTestSuite) TestGenerateA2_StepFailures() {
	cases := []struct {
		name    string
		arrange func()
		message string
	}{
		{"presign", func() { suite.storage.err = apperrors.NewUpstreamError("no bucket", nil) }, "failed to obtain presigned URL"},
		{"upload", func() { suite.transfer.uploadErr = apperrors.NewUpstreamError("403", nil) }, "failed to upload A2 form"},
		{"save", func() {
			suite.docRepo.On("SaveDocument", mock.Anything, mock.Anything).Return(assert.AnError).Once()
		}, "failed to save document record"},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.expectBundle()
			tc.arrange()

			result := suite.service.GenerateA2(context.Background(), "order-1", "actor-1")

			suite.Equal(domain.SettlementPartial, result.Status)
			suite.Nil(result.Document)
			suite.True(result.EmailSent, "ops are notified even when the form could not be stored")
			suite.Require().NotEmpty(result.Errors)
			suite.Contains(result.Errors[0], tc.message)
			suite.Require().Len(suite.mailer.sent, 1)
			suite.Len(suite.mailer.sent[0].Attachments, 1, "the rendered form still travels with the email")
		})
	}
}

func (suite *SettlementServiceTestSuite) TestGenerateA2_UploadFailureWritesNoDocument() {
	suite.expectBundle()
	suite.transfer.uploadErr = errors.New("connection reset")

	suite.service.GenerateA2(context.Background(), "order-1", "actor-1")

	suite.docRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
	suite.orderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestGenerateA2_BothFail() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)
	suite.mailer.err = errors.New("smtp down")

	result := suite.service.GenerateA2(context.Background(), "missing", "actor-1")

	suite.Equal(domain.SettlementFailed, result.Status)
	suite.False(result.EmailSent)
	suite.Len(result.Errors, 2)
}

func (suite *SettlementServiceTestSuite) TestGenerateA2_EmailFailureIsPartial() {
	suite.expectBundle()
	suite.docRepo.On("SaveDocument", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mailer.err = errors.New("mailgun 401")

	result := suite.service.GenerateA2(context.Background(), "order-1", "actor-1")

	suite.Equal(domain.SettlementPartial, result.Status)
	suite.NotNil(result.Document)
	suite.False(result.EmailSent)
}

// --- SendToForexPartner Tests ---
func zipNames(t *testing.T, data []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func (suite *SettlementServiceTestSuite) TestSendToForexPartner_ZipsWhatDownloads() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(suite.order, nil)
	suite.docRepo.On("ListDocumentsByOrder", mock.Anything, "order-1").Return([]domain.Document{
		{DocumentID: "d1", OrderID: "order-1", Name: "passport", ImageURL: "https://cdn.example.com/a/passport.pdf"},
		{DocumentID: "d2", OrderID: "order-1", Name: "passport", ImageURL: "https://cdn.example.com/b/passport.pdf"},
		{DocumentID: "d3", OrderID: "order-1", Name: "offer-letter.pdf", ImageURL: "https://cdn.example.com/missing.pdf"},
	}, nil).Once()
	suite.transfer.files = map[string][]byte{
		"https://cdn.example.com/a/passport.pdf": []byte("first"),
		"https://cdn.example.com/b/passport.pdf": []byte("second"),
	}

	result := suite.service.SendToForexPartner(context.Background(), "order-1", nil, "actor-1")

	suite.Equal(domain.SettlementPartial, result.Status)
	suite.True(result.EmailSent)
	suite.Equal([]string{"offer-letter.pdf"}, result.Skipped)
	included := append([]string(nil), result.Included...)
	sort.Strings(included)
	suite.Equal([]string{"passport (2).pdf", "passport.pdf"}, included)

	suite.Require().Len(suite.mailer.sent, 1)
	email := suite.mailer.sent[0]
	suite.Equal([]string{"partner@example.com"}, email.To)
	suite.Equal([]string{"ops@example.com"}, email.CC)
	suite.Require().Len(email.Attachments, 1)
	suite.Equal("Order_order-1_documents.zip", email.Attachments[0].Filename)
	entries := zipNames(suite.T(), email.Attachments[0].Data)
	suite.Equal("first", entries["passport.pdf"])
	suite.Equal("second", entries["passport (2).pdf"])
	suite.Contains(suite.events.events, "documents_sent_to_partner")
}

func (suite *SettlementServiceTestSuite) TestSendToForexPartner_AllDownloadsOK() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(suite.order, nil)
	suite.docRepo.On("FindDocumentByID", mock.Anything, "d1").Return(&domain.Document{DocumentID: "d1", OrderID: "order-1", Name: "pan.png", ImageURL: "https://cdn.example.com/pan.png"}, nil)
	suite.transfer.files = map[string][]byte{"https://cdn.example.com/pan.png": []byte("png")}

	result := suite.service.SendToForexPartner(context.Background(), "order-1", []string{"d1"}, "actor-1")

	suite.Equal(domain.SettlementOK, result.Status)
	suite.Equal([]string{"pan.png"}, result.Included)
	suite.Empty(result.Skipped)
}

func (suite *SettlementServiceTestSuite) TestSendToForexPartner_NothingDownloadsStillEmails() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(suite.order, nil)
	suite.docRepo.On("FindDocumentByID", mock.Anything, "d-other").Return(&domain.Document{DocumentID: "d-other", OrderID: "order-9"}, nil)
	suite.docRepo.On("FindDocumentByID", mock.Anything, "d-gone").Return(nil, apperrors.ErrNotFound)

	result := suite.service.SendToForexPartner(context.Background(), "order-1", []string{"d-other", "d-gone"}, "actor-1")

	suite.Equal(domain.SettlementPartial, result.Status)
	suite.True(result.EmailSent)
	suite.Empty(result.Included)
	suite.ElementsMatch([]string{"d-other", "d-gone"}, result.Skipped)
	suite.Require().Len(suite.mailer.sent, 1)
	suite.Empty(suite.mailer.sent[0].Attachments)
	suite.Contains(suite.mailer.sent[0].HTML, "No documents could be retrieved")
}

func (suite *SettlementServiceTestSuite) TestSendToForexPartner_NeverFetchesOffCDN() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "order-1").Return(suite.order, nil)
	suite.docRepo.On("ListDocumentsByOrder", mock.Anything, "order-1").Return([]domain.Document{
		{DocumentID: "d1", OrderID: "order-1", Name: "pan.png", ImageURL: "https://cdn.example.com/pan.png"},
		{DocumentID: "d2", OrderID: "order-1", Name: "creds", ImageURL: "http://169.254.169.254/latest/meta-data/"},
	}, nil).Once()
	suite.docRepo.On("FindDocumentByID", mock.Anything, "d3").Return(&domain.Document{DocumentID: "d3", OrderID: "order-1", Name: "internal", ImageURL: "http://10.0.0.5/secret"}, nil)
	suite.transfer.files = map[string][]byte{
		"https://cdn.example.com/pan.png":          []byte("png"),
		"http://169.254.169.254/latest/meta-data/": []byte("secret"),
		"http://10.0.0.5/secret":                   []byte("secret"),
	}

	result := suite.service.SendToForexPartner(context.Background(), "order-1", nil, "actor-1")
	suite.Equal(domain.SettlementPartial, result.Status)
	suite.Equal([]string{"pan.png"}, result.Included)
	suite.Equal([]string{"creds"}, result.Skipped)

	result = suite.service.SendToForexPartner(context.Background(), "order-1", []string{"d3"}, "actor-1")
	suite.Empty(result.Included)
	suite.Equal([]string{"internal"}, result.Skipped)

	suite.NotContains(suite.transfer.requested(), "http://169.254.169.254/latest/meta-data/")
	suite.NotContains(suite.transfer.requested(), "http://10.0.0.5/secret")
}

func (suite *SettlementServiceTestSuite) TestSendToForexPartner_UnknownOrder() {
	suite.orderRepo.On("FindOrderByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound)

	result := suite.service.SendToForexPartner(context.Background(), "nope", nil, "actor-1")

	suite.Equal(domain.SettlementFailed, result.Status)
	suite.False(result.EmailSent)
	suite.Empty(suite.mailer.sent)
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
