package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests for the read-only analytics queries.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/transactions", h.queryTransactions)
	}
}

// queryTransactions godoc
// @Summary Query ledger activity by date range
// @Description Returns transaction projections inside an inclusive date window, optionally filtered by type and account
// @Tags reports
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   startDate query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param   endDate query string true "End date (YYYY-MM-DD, inclusive)"
// @Param   type query string false "Filter by transaction type"
// @Param   chartOfAccountID query string false "Filter by chart-of-account entry"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.QueryByDateRangeResponse
// @Failure 400 {object} map[string]string "Invalid date range or filter"
// @Security BearerAuth
// @Router /organizations/{orgID}/reports/transactions [get]
func (h *reportingHandler) queryTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.QueryByDateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.QueryByDateRange(c.Request.Context(), orgID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to query ledger activity", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
