package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for admin reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/branches/:id/daily-summaries", h.getBranchDailySummaries) // Admin only
		reports.GET("/wallets/:clientId/statement", h.getWalletStatement)       // Admin only
	}
}

// getBranchDailySummaries godoc
// @Summary Get daily receipt summaries for a branch
// @Description Aggregates a branch's receipts per calendar day over a date range. Days with no receipts are omitted. The date window is inclusive of both days. Admin only.
// @Tags reports
// @Produce  json
// @Param   id path string true "Branch ID"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.BranchSummaryReportResponse
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Security BearerAuth
// @Router /reports/branches/{id}/daily-summaries [get]
func (h *reportingHandler) getBranchDailySummaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	var params dto.ReportingRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	// The "to" day is inclusive; the storage layer filters on an exclusive
	// upper bound.
	end := params.To.AddDate(0, 0, 1)

	summaries, err := h.reportingService.GetBranchDailySummaries(c.Request.Context(), branchID, params.From, end, requestingUserID)
	if err != nil {
		logger.Error("Failed to build branch daily summaries",
			slog.String("error", err.Error()),
			slog.String("branch_id", branchID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchSummaryReportResponse(branchID, summaries))
}

// getWalletStatement godoc
// @Summary Get a client's wallet statement
// @Description Builds a client's ledger statement over a date range, with opening and closing balances derived from the ledger. The date window is inclusive of both days. Admin only.
// @Tags reports
// @Produce  json
// @Param   clientId path string true "Client user ID"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.WalletStatementResponse
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /reports/wallets/{clientId}/statement [get]
func (h *reportingHandler) getWalletStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientId")

	var params dto.ReportingRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	end := params.To.AddDate(0, 0, 1)

	statement, err := h.reportingService.GetWalletStatement(c.Request.Context(), clientID, params.From, end, requestingUserID)
	if err != nil {
		logger.Error("Failed to build wallet statement",
			slog.String("error", err.Error()),
			slog.String("client_id", clientID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletStatementResponse(statement))
}
