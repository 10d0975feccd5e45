package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles order intake, editing, pricing and settlement routes.
type orderHandler struct {
	orderService      portssvc.OrderSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade, ss portssvc.SettlementSvcFacade) *orderHandler {
	return &orderHandler{orderService: os, settlementService: ss}
}

// registerOrderRoutes registers the /orders routes. Agents see their organisation's orders only;
// the settlement pipelines are run by the desk.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newOrderHandler(orderService, settlementService)
	desk := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleStaff)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID", h.updateOrder)
		orders.PATCH("/:orderID/status", desk, h.updateOrderStatus)
		orders.GET("/:orderID/sender", h.getSender)
		orders.PUT("/:orderID/sender", h.upsertSender)
		orders.POST("/:orderID/quote", h.quoteOrder)
		orders.POST("/:orderID/confirm", desk, h.confirmOrder)
		orders.POST("/:orderID/a2", desk, h.regenerateA2)
		orders.POST("/:orderID/send-to-partner", desk, h.sendToPartner)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Files a new remittance order together with its sender. Agents always file under their own organisation.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order intake form"
// @Success 201 {object} dto.CreateOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	order, sender, err := h.orderService.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to create order")
		return
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Order:  dto.ToOrderResponse(order),
		Sender: dto.ToSenderResponse(sender),
	})
}

// listOrders godoc
// @Summary List orders
// @Description Lists orders newest first. Pass nextToken from the previous page to continue.
// @Tags orders
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	orders, next, err := h.orderService.ListOrders(c.Request.Context(), actor, params)
	if err != nil {
		writeServiceError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders, next))
}

// getOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrder godoc
// @Summary Update an order
// @Description Changes editable fields. Changing any pricing input clears the calculated figures until the order is confirmed again.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), actor, c.Param("orderID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrderStatus godoc
// @Summary Set the order status
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Unknown order or terminal status"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/status [patch]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), actor, c.Param("orderID"), req.Status)
	if err != nil {
		writeServiceError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// getSender godoc
// @Summary Get the sender of an order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.SenderResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/sender [get]
func (h *orderHandler) getSender(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	sender, err := h.orderService.GetSender(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve sender")
		return
	}
	c.JSON(http.StatusOK, dto.ToSenderResponse(sender))
}

// upsertSender godoc
// @Summary Create or replace the sender of an order
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   sender body dto.SenderRequest true "Sender details"
// @Success 200 {object} dto.SenderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/sender [put]
func (h *orderHandler) upsertSender(c *gin.Context) {
	var req dto.SenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	sender, err := h.orderService.UpsertSender(c.Request.Context(), actor, c.Param("orderID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to save sender")
		return
	}
	c.JSON(http.StatusOK, dto.ToSenderResponse(sender))
}

// quoteOrder godoc
// @Summary Price an order at the live rate
// @Description Computes the pricing breakdown without saving it.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Rate source unavailable"
// @Security BearerAuth
// @Router /orders/{orderID}/quote [post]
func (h *orderHandler) quoteOrder(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	values, err := h.orderService.QuoteOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to quote order")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(*values))
}

// confirmOrder godoc
// @Summary Confirm an order
// @Description Prices the order at the live rate, stores the figures and generates the A2 form.
// @Description The settlement block reports partial failures of the A2 pipeline; the order stays confirmed.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.ConfirmOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Rate source unavailable"
// @Security BearerAuth
// @Router /orders/{orderID}/confirm [post]
func (h *orderHandler) confirmOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	order, result, err := h.orderService.ConfirmOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to confirm order")
		return
	}

	logger.Info("Order confirmed", slog.String("order_id", order.OrderID), slog.String("settlement_status", string(result.Status)))
	c.JSON(http.StatusOK, dto.ConfirmOrderResponse{
		Order:      dto.ToOrderResponse(order),
		Settlement: *result,
	})
}

// regenerateA2 godoc
// @Summary Regenerate the A2 form
// @Description Renders, uploads and records a fresh A2 form for a priced order and emails operations.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} domain.SettlementResult
// @Failure 400 {object} ErrorResponse "Order not priced yet"
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} domain.SettlementResult "Nothing could be produced"
// @Security BearerAuth
// @Router /orders/{orderID}/a2 [post]
func (h *orderHandler) regenerateA2(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve order")
		return
	}
	if !order.IsPriced() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order has not been confirmed yet"})
		return
	}

	result := h.settlementService.GenerateA2(c.Request.Context(), order.OrderID, actor.UserID)
	c.JSON(settlementStatusCode(result), result)
}

// sendToPartner godoc
// @Summary Send order documents to the forex partner
// @Description Downloads the selected documents (all of the order's documents when none are given),
// @Description zips them and emails the archive to the forex partner with operations in copy.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   request body dto.SendToPartnerRequest false "Documents to include"
// @Success 200 {object} domain.SettlementResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} domain.SettlementResult "Nothing was delivered"
// @Security BearerAuth
// @Router /orders/{orderID}/send-to-partner [post]
func (h *orderHandler) sendToPartner(c *gin.Context) {
	var req dto.SendToPartnerRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve order")
		return
	}

	result := h.settlementService.SendToForexPartner(c.Request.Context(), order.OrderID, req.DocumentIDs, actor.UserID)
	c.JSON(settlementStatusCode(result), result)
}

// settlementStatusCode reports a fully failed pipeline as a gateway error; partial results are still a 200.
func settlementStatusCode(result domain.SettlementResult) int {
	if result.Status == domain.SettlementFailed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
