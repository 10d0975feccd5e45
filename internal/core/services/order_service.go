package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

// orderService owns order intake, edits, status changes and pricing.
type orderService struct {
	BaseService
	orderRepo       portsrepo.OrderRepositoryFacade
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
	orgRepo         portsrepo.OrganisationReader
	rates           portssvc.RateSvcFacade
	settlement      portssvc.SettlementSvcFacade
	events          gateways.EventTracker
}

// NewOrderService creates the order service.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade,
	orgRepo portsrepo.OrganisationReader,
	rates portssvc.RateSvcFacade,
	settlement portssvc.SettlementSvcFacade,
	events gateways.EventTracker,
) portssvc.OrderSvcFacade {
	if events == nil {
		events = noopTracker{}
	}
	return &orderService{
		orderRepo:       orderRepo,
		beneficiaryRepo: beneficiaryRepo,
		orgRepo:         orgRepo,
		rates:           rates,
		settlement:      settlement,
		events:          events,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, actor domain.Principal, req dto.CreateOrderRequest) (*domain.Order, *domain.Sender, error) {
	orgID, err := s.intakeOrganisation(ctx, actor, req.OrganisationID)
	if err != nil {
		return nil, nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusDraft
	}
	if domain.IsTerminalStatus(status) {
		return nil, nil, apperrors.NewValidationError("a new order cannot start in status " + status)
	}

	order := domain.Order{
		OrderID:            uuid.NewString(),
		OrganisationID:     orgID,
		ForeignAmount:      req.ForeignAmount,
		CurrencyCode:       strings.ToUpper(strings.TrimSpace(req.CurrencyCode)),
		DestinationCountry: strings.ToUpper(strings.TrimSpace(req.DestinationCountry)),
		PurposeCode:        strings.ToUpper(strings.TrimSpace(req.PurposeCode)),
		Margin:             req.Margin,
		ForeignBankCharges: req.ForeignBankCharges,
		EducationLoan:      req.EducationLoan,
		Status:             status,
		BeneficiaryID:      req.BeneficiaryID,
		AuditFields:        newAudit(actor.UserID),
	}
	if err := validateOrderInputs(order); err != nil {
		return nil, nil, err
	}
	if err := s.checkBeneficiary(ctx, actor, order.BeneficiaryID); err != nil {
		return nil, nil, err
	}

	sender := senderFromRequest(req.Sender)
	sender.SenderID = uuid.NewString()
	sender.OrderID = order.OrderID
	sender.AuditFields = order.AuditFields

	if err := s.orderRepo.SaveOrderWithSender(ctx, order, sender); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", order.OrderID))
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.LogInfo(ctx, "Order created", slog.String("order_id", order.OrderID), slog.String("created_by", actor.UserID))
	return &order, &sender, nil
}

// intakeOrganisation resolves the organisation an order is filed under. Agents always file under their own.
func (s *orderService) intakeOrganisation(ctx context.Context, actor domain.Principal, requested *string) (*string, error) {
	if actor.IsAgent() {
		if actor.OrganisationID == nil {
			return nil, apperrors.NewForbiddenError("agent has no organisation")
		}
		if requested != nil && *requested != *actor.OrganisationID {
			return nil, apperrors.NewForbiddenError("agents can only create orders for their own organisation")
		}
		return actor.OrganisationID, nil
	}
	if requested == nil || *requested == "" {
		return nil, nil
	}
	if _, err := s.orgRepo.FindOrganisationByID(ctx, *requested); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("organisation %s does not exist", *requested))
		}
		return nil, fmt.Errorf("failed to load organisation: %w", err)
	}
	return requested, nil
}

// checkBeneficiary verifies that an attached beneficiary exists and may be used by actor.
func (s *orderService) checkBeneficiary(ctx context.Context, actor domain.Principal, beneficiaryID *string) error {
	if beneficiaryID == nil {
		return nil
	}
	b, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, *beneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError(fmt.Sprintf("beneficiary %s does not exist", *beneficiaryID))
		}
		return fmt.Errorf("failed to load beneficiary: %w", err)
	}
	if !b.VisibleTo(actor) {
		return apperrors.NewValidationError(fmt.Sprintf("beneficiary %s does not exist", *beneficiaryID))
	}
	return nil
}

func validateOrderInputs(o domain.Order) error {
	if !o.ForeignAmount.IsPositive() {
		return apperrors.NewValidationError("foreign amount must be greater than zero")
	}
	if o.Margin.IsNegative() {
		return apperrors.NewValidationError("margin cannot be negative")
	}
	if o.ForeignBankCharges != 0 && o.ForeignBankCharges != 1 {
		return apperrors.NewValidationError("foreign bank charges must be 0 (OUR) or 1 (SHA)")
	}
	if !domain.IsCurrencyAllowed(o.DestinationCountry, o.CurrencyCode) {
		return apperrors.NewValidationError(fmt.Sprintf("currency %s is not offered for destination %s", o.CurrencyCode, o.DestinationCountry))
	}
	return nil
}

func senderFromRequest(req dto.SenderRequest) domain.Sender {
	return domain.Sender{
		Name:                  strings.TrimSpace(req.Name),
		PAN:                   strings.ToUpper(strings.TrimSpace(req.PAN)),
		Address:               strings.TrimSpace(req.Address),
		City:                  strings.TrimSpace(req.City),
		State:                 strings.TrimSpace(req.State),
		PostalCode:            strings.TrimSpace(req.PostalCode),
		Phone:                 strings.TrimSpace(req.Phone),
		Email:                 strings.TrimSpace(req.Email),
		SourceOfFunds:         strings.TrimSpace(req.SourceOfFunds),
		RelationshipToStudent: strings.TrimSpace(req.RelationshipToStudent),
	}
}

// GetOrder returns the order if actor may see it. Orders of other organisations are reported as not found.
func (s *orderService) GetOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if !order.VisibleTo(actor) {
		return nil, apperrors.NewNotFoundError("order " + orderID + " not found")
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor domain.Principal, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	limit := pagination.ClampLimit(params.Limit, defaultOrderPageSize, maxOrderPageSize)
	filter := portsrepo.OrderFilter{
		Status: strings.TrimSpace(params.Status),
		Limit:  limit + 1,
	}
	if actor.IsAgent() {
		if actor.OrganisationID == nil {
			return nil, nil, apperrors.NewForbiddenError("agent has no organisation")
		}
		filter.OrganisationID = actor.OrganisationID
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		filter.After = &cursor
	}

	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders")
		return nil, nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var next *string
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.OrderID})
		next = &token
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, next, nil
}

func (s *orderService) GetSender(ctx context.Context, actor domain.Principal, orderID string) (*domain.Sender, error) {
	if _, err := s.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	sender, err := s.orderRepo.FindSenderByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender for order %s: %w", orderID, err)
	}
	return sender, nil
}

// editableOrder loads an order actor may change.
func (s *orderService) editableOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if domain.IsTerminalStatus(order.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("order %s is %s and can no longer be edited", orderID, order.Status))
	}
	return order, nil
}

// UpdateOrder applies the editable fields. Changing any financial input drops the computed values.
func (s *orderService) UpdateOrder(ctx context.Context, actor domain.Principal, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	order, err := s.editableOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	updated := *order
	financialChanged := false
	setDecimal := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil && !v.Equal(*dst) {
			*dst = *v
			financialChanged = true
		}
	}
	setString := func(dst *string, v *string) {
		if v == nil {
			return
		}
		if nv := strings.ToUpper(strings.TrimSpace(*v)); nv != *dst {
			*dst = nv
			financialChanged = true
		}
	}

	setDecimal(&updated.ForeignAmount, req.ForeignAmount)
	setDecimal(&updated.Margin, req.Margin)
	setString(&updated.CurrencyCode, req.CurrencyCode)
	setString(&updated.DestinationCountry, req.DestinationCountry)
	setString(&updated.PurposeCode, req.PurposeCode)
	if req.ForeignBankCharges != nil && *req.ForeignBankCharges != updated.ForeignBankCharges {
		updated.ForeignBankCharges = *req.ForeignBankCharges
		financialChanged = true
	}
	if req.EducationLoan != nil && *req.EducationLoan != updated.EducationLoan {
		updated.EducationLoan = *req.EducationLoan
		financialChanged = true
	}

	beneficiaryChanged := req.BeneficiaryID != nil && !sameOptional(req.BeneficiaryID, order.BeneficiaryID)
	if beneficiaryChanged {
		if err := s.checkBeneficiary(ctx, actor, req.BeneficiaryID); err != nil {
			return nil, err
		}
		updated.BeneficiaryID = req.BeneficiaryID
	}

	if !financialChanged && !beneficiaryChanged {
		return order, nil
	}
	if err := validateOrderInputs(updated); err != nil {
		return nil, err
	}
	if financialChanged && updated.IsPriced() {
		updated.ClearCalculatedValues()
		s.LogInfo(ctx, "Financial inputs changed, computed values cleared", slog.String("order_id", orderID))
	}

	touch(&updated.AuditFields, actor.UserID)
	if err := s.orderRepo.UpdateOrder(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update order", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	return &updated, nil
}

// UpdateOrderStatus sets the free-text status. Terminal statuses cannot be left.
func (s *orderService) UpdateOrderStatus(ctx context.Context, actor domain.Principal, orderID string, status string) (*domain.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.NewValidationError("status is required")
	}
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if domain.IsTerminalStatus(order.Status) {
		if strings.EqualFold(order.Status, status) {
			return order, nil
		}
		return nil, apperrors.NewValidationError(fmt.Sprintf("order %s is %s; its status cannot change", orderID, order.Status))
	}
	if order.Status == status {
		return order, nil
	}

	updated := *order
	updated.Status = status
	touch(&updated.AuditFields, actor.UserID)
	if err := s.orderRepo.UpdateOrder(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update order status", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	s.LogInfo(ctx, "Order status changed", slog.String("order_id", orderID), slog.String("from", order.Status), slog.String("to", status))
	return &updated, nil
}

func (s *orderService) UpsertSender(ctx context.Context, actor domain.Principal, orderID string, req dto.SenderRequest) (*domain.Sender, error) {
	if _, err := s.editableOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}

	sender := senderFromRequest(req)
	sender.OrderID = orderID

	existing, err := s.orderRepo.FindSenderByOrderID(ctx, orderID)
	switch {
	case err == nil:
		sender.SenderID = existing.SenderID
		sender.AuditFields = existing.AuditFields
		touch(&sender.AuditFields, actor.UserID)
	case errors.Is(err, apperrors.ErrNotFound):
		sender.SenderID = uuid.NewString()
		sender.AuditFields = newAudit(actor.UserID)
	default:
		return nil, fmt.Errorf("failed to load sender for order %s: %w", orderID, err)
	}

	if err := s.orderRepo.UpsertSender(ctx, sender); err != nil {
		s.LogError(ctx, err, "Failed to save sender", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to save sender for order %s: %w", orderID, err)
	}
	return &sender, nil
}

func (s *orderService) QuoteOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.CalculatedValues, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	return s.rates.Quote(ctx, order.FinancialInput())
}

// ConfirmOrder prices the order against the live rate, stores the figures and runs the A2 pipeline.
// A pipeline failure does not undo the confirmation; it is reported in the result.
func (s *orderService) ConfirmOrder(ctx context.Context, actor domain.Principal, orderID string) (*domain.Order, *domain.SettlementResult, error) {
	order, err := s.editableOrder(ctx, actor, orderID)
	if err != nil {
		return nil, nil, err
	}

	values, err := s.rates.Quote(ctx, order.FinancialInput())
	if err != nil {
		return nil, nil, err
	}

	updated := *order
	updated.ApplyCalculatedValues(*values)
	updated.Status = domain.StatusConfirmed
	touch(&updated.AuditFields, actor.UserID)
	if err := s.orderRepo.UpdateOrder(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to store confirmed order", slog.String("order_id", orderID))
		return nil, nil, fmt.Errorf("failed to confirm order %s: %w", orderID, err)
	}

	result := s.settlement.GenerateA2(ctx, orderID, actor.UserID)
	s.events.Enqueue(actor.UserID, "order_confirmed", map[string]any{
		"order_id":      orderID,
		"currency":      updated.CurrencyCode,
		"total_payable": values.TotalPayable.String(),
		"a2_status":     string(result.Status),
	})
	s.LogInfo(ctx, "Order confirmed", slog.String("order_id", orderID), slog.String("a2_status", string(result.Status)))
	return &updated, &result, nil
}

type noopTracker struct{}

func (noopTracker) Enqueue(string, string, map[string]any) {}
