package services

import (
	"context"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
)

// SettlementSvcFacade runs the document pipelines for a confirmed order.
// Both methods always return a result; its Status tells success from partial failure.
type SettlementSvcFacade interface {
	// GenerateA2 fills, uploads and records the A2 form, then notifies operations.
	GenerateA2(ctx context.Context, orderID string, actorID string) domain.SettlementResult
	// SendToForexPartner zips the order's documents and emails them to the forex partner.
	SendToForexPartner(ctx context.Context, orderID string, documentIDs []string, actorID string) domain.SettlementResult
}
