package repositories

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/utils/pagination"
)

// OrderFilter narrows an order listing. Results are ordered newest first.
type OrderFilter struct {
	OrganisationID *string
	Status         string
	Limit          int
	After          *pagination.Cursor
}

// OrderReader defines read operations for orders.
type OrderReader interface {
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListOrders returns at most filter.Limit orders older than filter.After.
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

// OrderWriter defines write operations for orders. Orders are never deleted.
type OrderWriter interface {
	// SaveOrderWithSender inserts the order and its sender in one transaction.
	SaveOrderWithSender(ctx context.Context, order domain.Order, sender domain.Sender) error
	// UpdateOrder overwrites every mutable column. Concurrent writers race, last write wins.
	UpdateOrder(ctx context.Context, order domain.Order) error
}

// SenderRepository reads and writes the 1:1 sender of an order.
type SenderRepository interface {
	FindSenderByOrderID(ctx context.Context, orderID string) (*domain.Sender, error)
	UpsertSender(ctx context.Context, sender domain.Sender) error
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	SenderRepository
}
