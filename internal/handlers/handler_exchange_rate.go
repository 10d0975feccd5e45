package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates and quotes.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listSnapshots)
		exchangeRates.GET("/:from/:to", h.getLiveRate)
	}
	rg.POST("/quote", h.quote)
}

// getLiveRate godoc
// @Summary Get the live exchange rate
// @Description Returns the current market rate for a currency pair from the live rate source.
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.LiveRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Failure 502 {object} ErrorResponse "Rate source unavailable"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getLiveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency codes must be 3 letters"})
		return
	}

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))
	rate, err := h.rateService.GetLiveRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve exchange rate")
		return
	}

	logger.Debug("Live rate served", slog.String("rate", rate.String()))
	c.JSON(http.StatusOK, dto.LiveRateResponse{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: rate})
}

// listSnapshots godoc
// @Summary List recorded INR rates
// @Description Returns the rates recorded whenever a quote was priced, newest first.
// @Tags exchange rates
// @Produce  json
// @Param   from query string false "Filter by source currency"
// @Param   limit query int false "Number of snapshots" default(30)
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listSnapshots(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	rates, err := h.rateService.ListSnapshots(c.Request.Context(), strings.ToUpper(params.From), params.Limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// quote godoc
// @Summary Price a remittance
// @Description Computes the pricing breakdown for the given inputs at the live rate. Nothing is stored.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   quote body dto.QuoteRequest true "Pricing inputs"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Rate source unavailable"
// @Security BearerAuth
// @Router /quote [post]
func (h *exchangeRateHandler) quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.CurrencyCode = strings.ToUpper(req.CurrencyCode)
	req.DestinationCountry = strings.ToUpper(req.DestinationCountry)
	if !req.ForeignAmount.IsPositive() || req.Margin.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "foreignAmount must be positive and margin must not be negative"})
		return
	}
	if !domain.IsCurrencyAllowed(req.DestinationCountry, req.CurrencyCode) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency " + req.CurrencyCode + " is not offered for " + req.DestinationCountry})
		return
	}

	values, err := h.rateService.Quote(c.Request.Context(), req.ToFinancialInput())
	if err != nil {
		writeServiceError(c, err, "Failed to compute quote")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(*values))
}
