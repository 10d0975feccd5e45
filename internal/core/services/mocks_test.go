package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock OrganisationRepository ---
type MockOrganisationRepository struct {
	mock.Mock
}

func (m *MockOrganisationRepository) FindOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error) {
	args := m.Called(ctx, organisationID)
	var org *domain.Organisation
	if args.Get(0) != nil {
		org = args.Get(0).(*domain.Organisation)
	}
	return org, args.Error(1)
}

func (m *MockOrganisationRepository) ListOrganisations(ctx context.Context, limit, offset int) ([]domain.Organisation, error) {
	args := m.Called(ctx, limit, offset)
	var orgs []domain.Organisation
	if args.Get(0) != nil {
		orgs = args.Get(0).([]domain.Organisation)
	}
	return orgs, args.Error(1)
}

func (m *MockOrganisationRepository) SaveOrganisation(ctx context.Context, org domain.Organisation) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganisationRepository) UpdateOrganisation(ctx context.Context, org domain.Organisation) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SaveOrderWithSender(ctx context.Context, order domain.Order, sender domain.Sender) error {
	args := m.Called(ctx, order, sender)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindSenderByOrderID(ctx context.Context, orderID string) (*domain.Sender, error) {
	args := m.Called(ctx, orderID)
	var sender *domain.Sender
	if args.Get(0) != nil {
		sender = args.Get(0).(*domain.Sender)
	}
	return sender, args.Error(1)
}

func (m *MockOrderRepository) UpsertSender(ctx context.Context, sender domain.Sender) error {
	args := m.Called(ctx, sender)
	return args.Error(0)
}

// --- Mock BeneficiaryRepository ---
type MockBeneficiaryRepository struct {
	mock.Mock
}

func (m *MockBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, beneficiaryID)
	var b *domain.Beneficiary
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Beneficiary)
	}
	return b, args.Error(1)
}

func (m *MockBeneficiaryRepository) ListBeneficiaries(ctx context.Context, organisationID *string, limit, offset int) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, organisationID, limit, offset)
	var list []domain.Beneficiary
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Beneficiary)
	}
	return list, args.Error(1)
}

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	var doc *domain.Document
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.Document)
	}
	return doc, args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByOrder(ctx context.Context, orderID string) ([]domain.Document, error) {
	args := m.Called(ctx, orderID)
	var docs []domain.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.Document)
	}
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSource) Name() string { return "mock" }

// --- Mock RateSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSvc) Quote(ctx context.Context, input domain.FinancialInput) (*domain.CalculatedValues, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculatedValues), args.Error(1)
}

func (m *MockRateSvc) ListSnapshots(ctx context.Context, from string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock SettlementSvc ---
type MockSettlementSvc struct {
	mock.Mock
}

func (m *MockSettlementSvc) GenerateA2(ctx context.Context, orderID string, actorID string) domain.SettlementResult {
	args := m.Called(ctx, orderID, actorID)
	return args.Get(0).(domain.SettlementResult)
}

func (m *MockSettlementSvc) SendToForexPartner(ctx context.Context, orderID string, documentIDs []string, actorID string) domain.SettlementResult {
	args := m.Called(ctx, orderID, documentIDs, actorID)
	return args.Get(0).(domain.SettlementResult)
}

// --- Gateway fakes ---

type fakeStorage struct {
	err   error
	calls []string
}

func (f *fakeStorage) PresignPut(_ context.Context, folder, fileName, _ string) (*gateways.PresignedUpload, error) {
	f.calls = append(f.calls, folder+"/"+fileName)
	if f.err != nil {
		return nil, f.err
	}
	key := folder + "/" + fileName
	return &gateways.PresignedUpload{
		Key:           key,
		PresignedURL:  "https://bucket.s3.example.com/" + key + "?X-Amz-Signature=sig",
		CloudFrontURL: "https://cdn.example.com/" + key,
		ExpiresAt:     time.Now().Add(15 * time.Minute),
	}, nil
}

type fakeTransfer struct {
	mu        sync.Mutex
	uploadErr error
	uploads   map[string][]byte
	files     map[string][]byte
	fetched   []string
}

func (f *fakeTransfer) Upload(_ context.Context, url, _ string, body []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[url] = body
	return nil
}

func (f *fakeTransfer) Download(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	data, ok := f.files[url]
	f.mu.Unlock()
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return data, ctx.Err()
}

func (f *fakeTransfer) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []domain.Email
}

func (f *fakeMailer) Send(_ context.Context, email domain.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type fakeRenderer struct {
	err    error
	fields []gateways.FieldValue
}

func (f *fakeRenderer) Render(_ context.Context, fields []gateways.FieldValue) ([]byte, error) {
	f.fields = fields
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake a2"), nil
}

type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTracker) Enqueue(_ string, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func strPtr(s string) *string { return &s }
