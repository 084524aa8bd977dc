package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to fiscal documents.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	payableService portssvc.PayableSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, ps portssvc.PayableSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		payableService: ps,
	}
}

// registerInvoiceRoutes registers routes related to invoices. The payable
// service backs the invoice-to-payable conversion endpoint.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, payableService portssvc.PayableSvcFacade) {
	h := newInvoiceHandler(invoiceService, payableService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.POST("/sweep-overdue", h.sweepOverdue)
		invoices.GET("/:id", h.getInvoiceByID)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.POST("/:id/payable", h.createPayableFromInvoice)
	}
}

// createInvoice godoc
// @Summary Register a fiscal document
// @Description Stores an invoice with its line items and installment schedule
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Invoice number already registered"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   supplierTaxID query string false "Supplier CNPJ filter"
// @Param   issuedAfter query string false "Issued on or after (YYYY-MM-DD)"
// @Param   issuedBefore query string false "Issued on or before (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Token from previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.InvoiceFilter{
		SupplierTaxID: params.SupplierTaxID,
		Limit:         params.Limit,
		NextToken:     params.NextToken,
	}
	if params.Status != "" {
		status := domain.InvoiceStatus(params.Status)
		filter.Status = &status
	}
	if params.IssuedAfter != "" {
		d, err := dto.ParseDate(params.IssuedAfter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issuedAfter date"})
			return
		}
		filter.IssuedAfter = &d
	}
	if params.IssuedBefore != "" {
		d, err := dto.ParseDate(params.IssuedBefore)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issuedBefore date"})
			return
		}
		filter.IssuedBefore = &d
	}

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, nextToken))
}

// getInvoiceByID godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its line items and installments
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoiceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "get invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes an invoice with its line items and installments. Payables referencing it block the deletion.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Invoice referenced by a payable"
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		respondServiceError(c, logger, err, "delete invoice")
		return
	}

	c.Status(http.StatusNoContent)
}

// createPayableFromInvoice godoc
// @Summary Create a payable from an invoice
// @Description Derives a payable from a registered invoice, carrying its net amount and schedule
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   payable body dto.CreatePayableFromInvoiceRequest true "Classification details"
// @Success 201 {object} dto.PayableResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{id}/payable [post]
func (h *invoiceHandler) createPayableFromInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.CreatePayableFromInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payable, err := h.payableService.CreatePayableFromInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "create payable from invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// sweepOverdue godoc
// @Summary Sweep overdue invoices
// @Description Transitions pending invoices past their due date into overdue
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.SweepResponse
// @Router /invoices/sweep-overdue [post]
func (h *invoiceHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	affected, err := h.invoiceService.SweepOverdueInvoices(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "sweep overdue invoices")
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{Affected: affected})
}
