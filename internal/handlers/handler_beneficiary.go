package handlers

import (
	"net/http"

	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

func newBeneficiaryHandler(bs portssvc.BeneficiarySvcFacade) *beneficiaryHandler {
	return &beneficiaryHandler{beneficiaryService: bs}
}

func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := newBeneficiaryHandler(beneficiaryService)

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.GET("/:id", h.getBeneficiary)
		beneficiaries.PUT("/:id", h.updateBeneficiary)
	}
}

// createBeneficiary godoc
// @Summary Create a beneficiary
// @Description Stores the receiving bank details. IBAN is required for IBAN countries; intermediary bank fields are kept only where the corridor uses them.
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   beneficiary body dto.BeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} dto.BeneficiaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	b, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to create beneficiary")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(b))
}

// listBeneficiaries godoc
// @Summary List beneficiaries
// @Tags beneficiaries
// @Produce  json
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListBeneficiariesResponse
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	var params dto.ListBeneficiariesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	bs, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), actor, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(c, err, "Failed to list beneficiaries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBeneficiariesResponse(bs))
}

// getBeneficiary godoc
// @Summary Get a beneficiary
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [get]
func (h *beneficiaryHandler) getBeneficiary(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve beneficiary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(b))
}

// updateBeneficiary godoc
// @Summary Replace a beneficiary's details
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Param   beneficiary body dto.BeneficiaryRequest true "Beneficiary details"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [put]
func (h *beneficiaryHandler) updateBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	b, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update beneficiary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(b))
}
