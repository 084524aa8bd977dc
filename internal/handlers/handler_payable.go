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

// payableHandler handles HTTP requests related to payables.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

// newPayableHandler creates a new payableHandler.
func newPayableHandler(ps portssvc.PayableSvcFacade) *payableHandler {
	return &payableHandler{
		payableService: ps,
	}
}

// registerPayableRoutes registers routes related to payables.
func registerPayableRoutes(rg *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := newPayableHandler(payableService)

	payables := rg.Group("/payables")
	{
		payables.POST("", h.createPayable)
		payables.GET("", h.listPayables)
		payables.POST("/sweep-overdue", h.sweepOverdue)
		payables.GET("/:id", h.getPayableByID)
		payables.PUT("/:id", h.updatePayable)
		payables.DELETE("/:id", h.deletePayable)
		payables.POST("/:id/payments", h.recordPayment)
		payables.GET("/:id/payments", h.listPayments)
	}
}

// createPayable godoc
// @Summary Create a new payable
// @Description Registers an obligation to pay, optionally split into installments
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   payable body dto.CreatePayableRequest true "Payable details"
// @Success 201 {object} dto.PayableResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Referenced invoice missing"
// @Failure 500 {object} map[string]string "Failed to create payable"
// @Router /payables [post]
func (h *payableHandler) createPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payable, err := h.payableService.CreatePayable(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create payable")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// listPayables godoc
// @Summary List payables
// @Description Retrieves a page of payables ordered by due date, with filters
// @Tags payables
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   expenseType query string false "Expense type filter"
// @Param   category query string false "Category filter"
// @Param   supplier query string false "Supplier name contains"
// @Param   dueAfter query string false "Due on or after (YYYY-MM-DD)"
// @Param   dueBefore query string false "Due on or before (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Token from previous page"
// @Success 200 {object} dto.ListPayablesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /payables [get]
func (h *payableHandler) listPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPayablesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.PayableFilter{
		Category:     params.Category,
		SupplierName: params.SupplierName,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if params.Status != "" {
		status := domain.PayableStatus(params.Status)
		filter.Status = &status
	}
	if params.ExpenseType != "" {
		expenseType := domain.ExpenseType(params.ExpenseType)
		filter.ExpenseType = &expenseType
	}
	if params.DueAfter != "" {
		d, err := dto.ParseDate(params.DueAfter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueAfter date"})
			return
		}
		filter.DueAfter = &d
	}
	if params.DueBefore != "" {
		d, err := dto.ParseDate(params.DueBefore)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueBefore date"})
			return
		}
		filter.DueBefore = &d
	}

	payables, nextToken, err := h.payableService.ListPayables(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "list payables")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPayablesResponse(payables, nextToken))
}

// getPayableByID godoc
// @Summary Get a payable
// @Description Retrieves a payable with its installments and payments
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 404 {object} map[string]string "Payable not found"
// @Router /payables/{id} [get]
func (h *payableHandler) getPayableByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	payable, err := h.payableService.GetPayableByID(c.Request.Context(), payableID)
	if err != nil {
		respondServiceError(c, logger, err, "get payable")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// updatePayable godoc
// @Summary Update a payable
// @Description Applies a partial change set to an existing payable
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   id path string true "Payable ID"
// @Param   payable body dto.UpdatePayableRequest true "Fields to change"
// @Success 200 {object} dto.PayableResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Payable not found"
// @Router /payables/{id} [put]
func (h *payableHandler) updatePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	var req dto.UpdatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payable, err := h.payableService.UpdatePayable(c.Request.Context(), payableID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update payable")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// deletePayable godoc
// @Summary Delete a payable
// @Description Removes a payable together with its installments and payments
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Payable not found"
// @Router /payables/{id} [delete]
func (h *payableHandler) deletePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	if err := h.payableService.DeletePayable(c.Request.Context(), payableID); err != nil {
		respondServiceError(c, logger, err, "delete payable")
		return
	}

	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Registers a disbursement against a payable, optionally settling an installment
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   id path string true "Payable ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PayableResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Payable or installment not found"
// @Router /payables/{id}/payments [post]
func (h *payableHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payable, err := h.payableService.RecordPayment(c.Request.Context(), payableID, req)
	if err != nil {
		respondServiceError(c, logger, err, "record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// listPayments godoc
// @Summary List payments of a payable
// @Tags payables
// @Produce  json
// @Param   id path string true "Payable ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payable not found"
// @Router /payables/{id}/payments [get]
func (h *payableHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID := c.Param("id")

	payments, err := h.payableService.ListPayments(c.Request.Context(), payableID)
	if err != nil {
		respondServiceError(c, logger, err, "list payments")
		return
	}

	res := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = dto.ToPaymentResponse(p)
	}
	c.JSON(http.StatusOK, res)
}

// sweepOverdue godoc
// @Summary Sweep overdue payables
// @Description Transitions pending payables past their due date into overdue
// @Tags payables
// @Produce  json
// @Success 200 {object} dto.SweepResponse
// @Router /payables/sweep-overdue [post]
func (h *payableHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	affected, err := h.payableService.SweepOverduePayables(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "sweep overdue payables")
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{Affected: affected})
}
