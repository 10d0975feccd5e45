package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers upload credential and document metadata routes.
// The order-scoped listing lives under /orders so it shares the order's visibility rules.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	rg.POST("/uploads/presign", h.presign)
	rg.GET("/orders/:orderID/documents", h.listOrderDocuments)

	docs := rg.Group("/documents")
	{
		docs.POST("", h.createDocument)
		docs.PATCH("/:id", h.updateDocument)
		docs.DELETE("/:id", h.deleteDocument)
	}
}

// presign godoc
// @Summary Get an upload URL
// @Description Returns a presigned PUT URL for the object and the public URL it will be served from.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   request body dto.PresignRequest true "Object to upload"
// @Success 200 {object} dto.PresignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /uploads/presign [post]
func (h *documentHandler) presign(c *gin.Context) {
	var req dto.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	upload, err := h.documentService.Presign(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to obtain presigned URL")
		return
	}
	c.JSON(http.StatusOK, dto.PresignResponse{
		PresignedURL:  upload.PresignedURL,
		CloudFrontURL: upload.CloudFrontURL,
		ExpiresAt:     upload.ExpiresAt,
	})
}

// createDocument godoc
// @Summary Record an uploaded document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document metadata"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to save document")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Document recorded", slog.String("document_id", doc.DocumentID), slog.String("order_id", doc.OrderID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Rename or comment a document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [patch]
func (h *documentHandler) updateDocument(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a document record
// @Tags documents
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}

// listOrderDocuments godoc
// @Summary List the documents of an order
// @Tags documents
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/documents [get]
func (h *documentHandler) listOrderDocuments(c *gin.Context) {
	actor, ok := principalOrAbort(c)
	if !ok {
		return
	}
	docs, err := h.documentService.ListOrderDocuments(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}
