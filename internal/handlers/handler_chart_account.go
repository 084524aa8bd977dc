package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chartAccountHandler handles HTTP requests related to the chart of accounts.
type chartAccountHandler struct {
	chartAccountService portssvc.ChartAccountSvcFacade
}

// newChartAccountHandler creates a new chartAccountHandler.
func newChartAccountHandler(cs portssvc.ChartAccountSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{
		chartAccountService: cs,
	}
}

// registerChartAccountRoutes registers routes related to chart accounts.
func registerChartAccountRoutes(rg *gin.RouterGroup, chartAccountService portssvc.ChartAccountSvcFacade) {
	h := newChartAccountHandler(chartAccountService)

	accounts := rg.Group("/chart-accounts")
	{
		accounts.POST("", h.createChartAccount)
		accounts.GET("", h.listChartAccounts)
		accounts.GET("/:id", h.getChartAccountByID)
		accounts.PUT("/:id", h.updateChartAccount)
		accounts.DELETE("/:id", h.deactivateChartAccount)
	}
}

// createChartAccount godoc
// @Summary Create a chart account
// @Tags chart-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateChartAccountRequest true "Account details"
// @Success 201 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /chart-accounts [post]
func (h *chartAccountHandler) createChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateChartAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.chartAccountService.CreateChartAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create chart account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

// listChartAccounts godoc
// @Summary List chart accounts
// @Tags chart-accounts
// @Produce  json
// @Param   onlyActive query bool false "Only active accounts"
// @Param   type query string false "Account type filter (REVENUE, COST, EXPENSE)"
// @Success 200 {array} dto.ChartAccountResponse
// @Router /chart-accounts [get]
func (h *chartAccountHandler) listChartAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	onlyActive := c.Query("onlyActive") == "true"

	var accountType *domain.AccountType
	if t := c.Query("type"); t != "" {
		at := domain.AccountType(t)
		if !at.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account type"})
			return
		}
		accountType = &at
	}

	accounts, err := h.chartAccountService.ListChartAccounts(c.Request.Context(), onlyActive, accountType)
	if err != nil {
		respondServiceError(c, logger, err, "list chart accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChartAccountsResponse(accounts))
}

// getChartAccountByID godoc
// @Summary Get a chart account
// @Tags chart-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /chart-accounts/{id} [get]
func (h *chartAccountHandler) getChartAccountByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.chartAccountService.GetChartAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "get chart account")
		return
	}

	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// updateChartAccount godoc
// @Summary Update a chart account
// @Description Changes name, subgroup or active flag. Code, type and group are immutable.
// @Tags chart-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateChartAccountRequest true "Fields to change"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /chart-accounts/{id} [put]
func (h *chartAccountHandler) updateChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.chartAccountService.UpdateChartAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update chart account")
		return
	}

	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// deactivateChartAccount godoc
// @Summary Deactivate a chart account
// @Description Marks the account inactive. Its posting history is kept.
// @Tags chart-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /chart-accounts/{id} [delete]
func (h *chartAccountHandler) deactivateChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if err := h.chartAccountService.DeactivateChartAccount(c.Request.Context(), accountID); err != nil {
		respondServiceError(c, logger, err, "deactivate chart account")
		return
	}

	c.Status(http.StatusNoContent)
}
