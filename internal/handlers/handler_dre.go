package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dreHandler handles HTTP requests related to the income statement.
type dreHandler struct {
	dreService portssvc.DRESvcFacade
}

// newDREHandler creates a new dreHandler.
func newDREHandler(ds portssvc.DRESvcFacade) *dreHandler {
	return &dreHandler{
		dreService: ds,
	}
}

// registerDRERoutes registers routes related to ledger entries and snapshots.
func registerDRERoutes(rg *gin.RouterGroup, dreService portssvc.DRESvcFacade) {
	h := newDREHandler(dreService)

	dre := rg.Group("/dre")
	{
		dre.POST("/entries", h.postLedgerEntry)
		dre.GET("/entries", h.listLedgerEntries)
		dre.GET("/entries/:id", h.getLedgerEntryByID)
		dre.DELETE("/entries/:id", h.deleteLedgerEntry)
		dre.GET("/snapshots", h.listSnapshots)
		dre.GET("/snapshots/:year/:month", h.getSnapshot)
		dre.POST("/snapshots/:year/:month/recompute", h.recomputeSnapshot)
	}
}

// postLedgerEntry godoc
// @Summary Post a ledger entry
// @Description Registers an income-statement posting against a chart account
// @Tags dre
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Posting details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Chart account missing"
// @Router /dre/entries [post]
func (h *dreHandler) postLedgerEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostLedgerEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.dreService.PostLedgerEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "post ledger entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listLedgerEntries godoc
// @Summary List ledger entries
// @Tags dre
// @Produce  json
// @Param   accountID query string false "Chart account filter"
// @Param   from query string false "Entries on or after (YYYY-MM-DD)"
// @Param   to query string false "Entries on or before (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Token from previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /dre/entries [get]
func (h *dreHandler) listLedgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.LedgerEntryFilter{
		AccountID: params.AccountID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.From != "" {
		d, err := dto.ParseDate(params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		filter.From = &d
	}
	if params.To != "" {
		d, err := dto.ParseDate(params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter.To = &d
	}

	entries, nextToken, err := h.dreService.ListLedgerEntries(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "list ledger entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries, nextToken))
}

// getLedgerEntryByID godoc
// @Summary Get a ledger entry
// @Tags dre
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /dre/entries/{id} [get]
func (h *dreHandler) getLedgerEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.dreService.GetLedgerEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "get ledger entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteLedgerEntry godoc
// @Summary Delete a ledger entry
// @Description Removes a posting. The month's snapshot is stale until recomputed.
// @Tags dre
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /dre/entries/{id} [delete]
func (h *dreHandler) deleteLedgerEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	if err := h.dreService.DeleteLedgerEntry(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, logger, err, "delete ledger entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// yearMonthParams parses the :year/:month path segments.
func yearMonthParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return 0, 0, false
	}
	return year, month, true
}

// getSnapshot godoc
// @Summary Get a monthly snapshot
// @Tags dre
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.MonthlySnapshotResponse
// @Failure 404 {object} map[string]string "Snapshot not computed yet"
// @Router /dre/snapshots/{year}/{month} [get]
func (h *dreHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	snapshot, err := h.dreService.GetSnapshot(c.Request.Context(), year, month)
	if err != nil {
		respondServiceError(c, logger, err, "get snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySnapshotResponse(snapshot))
}

// listSnapshots godoc
// @Summary List snapshots of a year
// @Tags dre
// @Produce  json
// @Param   year query int true "Year"
// @Success 200 {array} dto.MonthlySnapshotResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Router /dre/snapshots [get]
func (h *dreHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	snapshots, err := h.dreService.ListSnapshots(c.Request.Context(), year)
	if err != nil {
		respondServiceError(c, logger, err, "list snapshots")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMonthlySnapshotsResponse(snapshots))
}

// recomputeSnapshot godoc
// @Summary Recompute a monthly snapshot
// @Description Aggregates the month's postings per group and upserts the derived income statement
// @Tags dre
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.MonthlySnapshotResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /dre/snapshots/{year}/{month}/recompute [post]
func (h *dreHandler) recomputeSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	snapshot, err := h.dreService.RecomputeSnapshot(c.Request.Context(), year, month)
	if err != nil {
		respondServiceError(c, logger, err, "recompute snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySnapshotResponse(snapshot))
}
