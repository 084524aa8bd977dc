package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringExpenseHandler handles HTTP requests related to recurring-expense templates.
type recurringExpenseHandler struct {
	recurringService portssvc.RecurringExpenseSvcFacade
}

// newRecurringExpenseHandler creates a new recurringExpenseHandler.
func newRecurringExpenseHandler(rs portssvc.RecurringExpenseSvcFacade) *recurringExpenseHandler {
	return &recurringExpenseHandler{
		recurringService: rs,
	}
}

// registerRecurringExpenseRoutes registers routes related to recurring expenses.
func registerRecurringExpenseRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringExpenseSvcFacade) {
	h := newRecurringExpenseHandler(recurringService)

	recurring := rg.Group("/recurring-expenses")
	{
		recurring.POST("", h.createRecurringExpense)
		recurring.GET("", h.listRecurringExpenses)
		recurring.POST("/generate", h.generateDuePayables)
		recurring.GET("/:id", h.getRecurringExpenseByID)
		recurring.PUT("/:id", h.updateRecurringExpense)
		recurring.DELETE("/:id", h.deleteRecurringExpense)
	}
}

// createRecurringExpense godoc
// @Summary Create a recurring-expense template
// @Tags recurring-expenses
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateRecurringExpenseRequest true "Template details"
// @Success 201 {object} dto.RecurringExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /recurring-expenses [post]
func (h *recurringExpenseHandler) createRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurringExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.recurringService.CreateRecurringExpense(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create recurring expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringExpenseResponse(expense))
}

// listRecurringExpenses godoc
// @Summary List recurring-expense templates
// @Tags recurring-expenses
// @Produce  json
// @Param   onlyActive query bool false "Only active templates"
// @Success 200 {array} dto.RecurringExpenseResponse
// @Router /recurring-expenses [get]
func (h *recurringExpenseHandler) listRecurringExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	onlyActive := c.Query("onlyActive") == "true"

	expenses, err := h.recurringService.ListRecurringExpenses(c.Request.Context(), onlyActive)
	if err != nil {
		respondServiceError(c, logger, err, "list recurring expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecurringExpensesResponse(expenses))
}

// getRecurringExpenseByID godoc
// @Summary Get a recurring-expense template
// @Tags recurring-expenses
// @Produce  json
// @Param   id path string true "Template ID"
// @Success 200 {object} dto.RecurringExpenseResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /recurring-expenses/{id} [get]
func (h *recurringExpenseHandler) getRecurringExpenseByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringExpenseID := c.Param("id")

	expense, err := h.recurringService.GetRecurringExpenseByID(c.Request.Context(), recurringExpenseID)
	if err != nil {
		respondServiceError(c, logger, err, "get recurring expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(expense))
}

// updateRecurringExpense godoc
// @Summary Update a recurring-expense template
// @Tags recurring-expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Template ID"
// @Param   template body dto.UpdateRecurringExpenseRequest true "Fields to change"
// @Success 200 {object} dto.RecurringExpenseResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /recurring-expenses/{id} [put]
func (h *recurringExpenseHandler) updateRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringExpenseID := c.Param("id")

	var req dto.UpdateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.recurringService.UpdateRecurringExpense(c.Request.Context(), recurringExpenseID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update recurring expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(expense))
}

// deleteRecurringExpense godoc
// @Summary Delete a recurring-expense template
// @Tags recurring-expenses
// @Produce  json
// @Param   id path string true "Template ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /recurring-expenses/{id} [delete]
func (h *recurringExpenseHandler) deleteRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringExpenseID := c.Param("id")

	if err := h.recurringService.DeleteRecurringExpense(c.Request.Context(), recurringExpenseID); err != nil {
		respondServiceError(c, logger, err, "delete recurring expense")
		return
	}

	c.Status(http.StatusNoContent)
}

// generateDuePayables godoc
// @Summary Generate payables from due templates
// @Description Materializes one payable per active template whose next due date has arrived
// @Tags recurring-expenses
// @Produce  json
// @Success 200 {object} dto.GeneratePayablesResponse
// @Router /recurring-expenses/generate [post]
func (h *recurringExpenseHandler) generateDuePayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	generated, err := h.recurringService.GenerateDuePayables(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "generate due payables")
		return
	}

	res := dto.GeneratePayablesResponse{Generated: make([]dto.PayableResponse, len(generated))}
	for i := range generated {
		res.Generated[i] = dto.ToPayableResponse(&generated[i])
	}
	c.JSON(http.StatusOK, res)
}
