package services_test

import (
	"context"
	"testing"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	docRepo   *MockDocumentRepository
	orderRepo *MockOrderRepository
	storage   *fakeStorage
	service   portssvc.DocumentSvcFacade

	orgID   string
	agent   domain.Principal
	orderID string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.docRepo = new(MockDocumentRepository)
	suite.orderRepo = new(MockOrderRepository)
	suite.storage = &fakeStorage{}
	orders := services.NewOrderService(suite.orderRepo, new(MockBeneficiaryRepository), new(MockOrganisationRepository), new(MockRateSvc), new(MockSettlementSvc), nil)
	suite.service = services.NewDocumentService(suite.docRepo, orders, suite.storage, "https://cdn.example.com")

	suite.orgID = uuid.NewString()
	suite.agent = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAgent, OrganisationID: &suite.orgID}
	suite.orderID = uuid.NewString()
	suite.orderRepo.On("FindOrderByID", mock.Anything, suite.orderID).Return(&domain.Order{OrderID: suite.orderID, OrganisationID: &suite.orgID}, nil).Maybe()
}

func (suite *DocumentServiceTestSuite) TestPresign() {
	ctx := context.Background()

	upload, err := suite.service.Presign(ctx, suite.agent, dto.PresignRequest{FileName: "passport.pdf", FileType: "application/pdf", Folder: "/orders/abc/../abc/"})
	suite.Require().NoError(err)
	suite.Equal("https://cdn.example.com/orders/abc/passport.pdf", upload.CloudFrontURL)
	suite.Equal([]string{"orders/abc/passport.pdf"}, suite.storage.calls)

	_, err = suite.service.Presign(ctx, suite.agent, dto.PresignRequest{FileName: "x.exe", FileType: "application/x-msdownload", Folder: "orders"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.storage.err = apperrors.NewUpstreamError("s3 down", nil)
	_, err = suite.service.Presign(ctx, suite.agent, dto.PresignRequest{FileName: "a.png", FileType: "image/png", Folder: "orders"})
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.Contains(err.Error(), "failed to obtain presigned URL")
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_SanitisesAndStamps() {
	ctx := context.Background()
	suite.docRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.Comment == "looks fine" && d.UploadedBy == suite.agent.UserID && d.OrderID == suite.orderID
	})).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, suite.agent, dto.CreateDocumentRequest{
		Role:     domain.DocumentRoleSender,
		UserID:   "sender-1",
		Type:     "PASSPORT",
		ImageURL: "https://cdn.example.com/orders/x/passport.pdf",
		OrderID:  suite.orderID,
		Name:     "Passport",
		Comment:  "<script>alert(1)</script>looks fine",
		FileSize: 1024,
	})

	suite.Require().NoError(err)
	suite.Equal("looks fine", doc.Comment)
	suite.docRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_RejectsURLsOffTheCDN() {
	urls := []string{
		"http://169.254.169.254/latest/meta-data/iam/security-credentials/",
		"http://localhost:8080/admin",
		"https://cdn.example.com.attacker.net/passport.pdf",
		"https://user@cdn.example.com/passport.pdf",
		"http://cdn.example.com/passport.pdf",
		"file:///etc/passwd",
		"https://cdn.example.com",
	}
	for _, u := range urls {
		_, err := suite.service.CreateDocument(context.Background(), suite.agent, dto.CreateDocumentRequest{
			Role: domain.DocumentRoleSender, ImageURL: u, OrderID: suite.orderID, Name: "Passport", FileSize: 10,
		})
		suite.ErrorIs(err, apperrors.ErrValidation, u)
	}
	suite.docRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_TooLarge() {
	_, err := suite.service.CreateDocument(context.Background(), suite.agent, dto.CreateDocumentRequest{
		Role: domain.DocumentRoleOrder, OrderID: suite.orderID, Name: "big", FileSize: dto.MaxDocumentSize + 1,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestDocumentOfForeignOrderIsHidden() {
	ctx := context.Background()
	foreignOrder := uuid.NewString()
	other := uuid.NewString()
	suite.orderRepo.On("FindOrderByID", mock.Anything, foreignOrder).Return(&domain.Order{OrderID: foreignOrder, OrganisationID: &other}, nil)
	suite.docRepo.On("FindDocumentByID", ctx, "doc-1").Return(&domain.Document{DocumentID: "doc-1", OrderID: foreignOrder}, nil)

	err := suite.service.DeleteDocument(ctx, suite.agent, "doc-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.docRepo.AssertNotCalled(suite.T(), "DeleteDocument", mock.Anything, mock.Anything)

	_, err = suite.service.ListOrderDocuments(ctx, suite.agent, foreignOrder)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	doc := &domain.Document{DocumentID: "doc-2", OrderID: suite.orderID, Name: "Old", Comment: "c"}
	suite.docRepo.On("FindDocumentByID", ctx, "doc-2").Return(doc, nil)
	suite.docRepo.On("UpdateDocument", ctx, mock.MatchedBy(func(d domain.Document) bool { return d.Name == "New" && d.Comment == "c" })).Return(nil).Once()
	suite.docRepo.On("DeleteDocument", ctx, "doc-2").Return(nil).Once()

	name := "New"
	updated, err := suite.service.UpdateDocument(ctx, suite.agent, "doc-2", dto.UpdateDocumentRequest{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("New", updated.Name)

	empty := "   "
	_, err = suite.service.UpdateDocument(ctx, suite.agent, "doc-2", dto.UpdateDocumentRequest{Name: &empty})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Require().NoError(suite.service.DeleteDocument(ctx, suite.agent, "doc-2"))
	suite.docRepo.AssertExpectations(suite.T())
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
