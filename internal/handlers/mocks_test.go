package handlers_test

import (
	"context"
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, actor domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, actor domain.Principal, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, actor domain.Principal, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	args := m.Called(ctx, actor, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Order), next, args.Error(2)
}
func (m *MockOrderService) GetSender(ctx context.Context, actor domain.Principal, orderID string) (*domain.Sender, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sender), args.Error(1)
}
func (m *MockOrderService) CreateOrder(ctx context.Context, actor domain.Principal, req dto.CreateOrderRequest) (*domain.Order, *domain.Sender, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Get(1).(*domain.Sender), args.Error(2)
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, actor domain.Principal, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, actor domain.Principal, orderID string, status string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) UpsertSender(ctx context.Context, actor domain.Principal, orderID string, req dto.SenderRequest) (*domain.Sender, error) {
	args := m.Called(ctx, actor, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sender), args.Error(1)
}
func (m *MockOrderService) QuoteOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.CalculatedValues, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculatedValues), args.Error(1)
}
func (m *MockOrderService) ConfirmOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, *domain.SettlementResult, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Get(1).(*domain.SettlementResult), args.Error(2)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) GenerateA2(ctx context.Context, orderID string, actorID string) domain.SettlementResult {
	args := m.Called(ctx, orderID, actorID)
	return args.Get(0).(domain.SettlementResult)
}
func (m *MockSettlementService) SendToForexPartner(ctx context.Context, orderID string, documentIDs []string, actorID string) domain.SettlementResult {
	args := m.Called(ctx, orderID, documentIDs, actorID)
	return args.Get(0).(domain.SettlementResult)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateService) Quote(ctx context.Context, input domain.FinancialInput) (*domain.CalculatedValues, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculatedValues), args.Error(1)
}
func (m *MockRateService) ListSnapshots(ctx context.Context, from string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}
