package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/dto"
)

// OrderReaderSvc defines read operations on orders and their senders.
type OrderReaderSvc interface {
	GetOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, error)
	// ListOrders returns a page of orders and the token of the next page, if any.
	ListOrders(ctx context.Context, actor domain.Principal, params dto.ListOrdersParams) ([]domain.Order, *string, error)
	GetSender(ctx context.Context, actor domain.Principal, orderID string) (*domain.Sender, error)
}

// OrderWriterSvc defines intake and edits.
type OrderWriterSvc interface {
	CreateOrder(ctx context.Context, actor domain.Principal, req dto.CreateOrderRequest) (*domain.Order, *domain.Sender, error)
	UpdateOrder(ctx context.Context, actor domain.Principal, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, actor domain.Principal, orderID string, status string) (*domain.Order, error)
	UpsertSender(ctx context.Context, actor domain.Principal, orderID string, req dto.SenderRequest) (*domain.Sender, error)
}

// OrderPricingSvc prices and confirms orders against the live rate.
type OrderPricingSvc interface {
	// QuoteOrder prices the stored order without persisting anything.
	QuoteOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.CalculatedValues, error)
	// ConfirmOrder writes the priced figures onto the order and runs the A2 pipeline.
	ConfirmOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, *domain.SettlementResult, error)
}

// OrderSvcFacade combines all order-related service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	OrderPricingSvc
}
