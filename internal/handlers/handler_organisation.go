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

type organisationHandler struct {
	orgService portssvc.OrganisationSvcFacade
}

func newOrganisationHandler(os portssvc.OrganisationSvcFacade) *organisationHandler {
	return &organisationHandler{orgService: os}
}

// registerOrganisationRoutes registers organisation routes. Agents may only read their own organisation.
func registerOrganisationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganisationSvcFacade) {
	h := newOrganisationHandler(orgService)
	adminOnly := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)
	staff := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleStaff)

	orgs := rg.Group("/organisations")
	{
		orgs.POST("", adminOnly, h.createOrganisation)
		orgs.GET("", staff, h.listOrganisations)
		orgs.GET("/:id", h.getOrganisation)
		orgs.PUT("/:id", adminOnly, h.updateOrganisation)
	}
}

// createOrganisation godoc
// @Summary Create an agent organisation
// @Tags organisations
// @Accept  json
// @Produce  json
// @Param   organisation body dto.CreateOrganisationRequest true "Organisation details"
// @Success 201 {object} dto.OrganisationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations [post]
func (h *organisationHandler) createOrganisation(c *gin.Context) {
	var req dto.CreateOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	org, err := h.orgService.CreateOrganisation(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to create organisation")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Organisation created", slog.String("organisation_id", org.OrganisationID))
	c.JSON(http.StatusCreated, dto.ToOrganisationResponse(org))
}

// getOrganisation godoc
// @Summary Get an organisation
// @Tags organisations
// @Produce  json
// @Param   id path string true "Organisation ID"
// @Success 200 {object} dto.OrganisationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations/{id} [get]
func (h *organisationHandler) getOrganisation(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	orgID := c.Param("id")
	if actor.IsAgent() && (actor.OrganisationID == nil || *actor.OrganisationID != orgID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Organisation not found"})
		return
	}

	org, err := h.orgService.GetOrganisationByID(c.Request.Context(), orgID)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve organisation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganisationResponse(org))
}

// listOrganisations godoc
// @Summary List organisations
// @Tags organisations
// @Produce  json
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListOrganisationsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations [get]
func (h *organisationHandler) listOrganisations(c *gin.Context) {
	var params dto.ListOrganisationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	orgs, err := h.orgService.ListOrganisations(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		writeServiceError(c, err, "Failed to list organisations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganisationsResponse(orgs))
}

// updateOrganisation godoc
// @Summary Update an organisation
// @Description Renames, changes the contact address of, or deactivates an organisation.
// @Tags organisations
// @Accept  json
// @Produce  json
// @Param   id path string true "Organisation ID"
// @Param   organisation body dto.UpdateOrganisationRequest true "Fields to change"
// @Success 200 {object} dto.OrganisationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations/{id} [put]
func (h *organisationHandler) updateOrganisation(c *gin.Context) {
	var req dto.UpdateOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	org, err := h.orgService.UpdateOrganisation(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update organisation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganisationResponse(org))
}
