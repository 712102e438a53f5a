package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// estimateHandler handles HTTP requests related to estimates.
type estimateHandler struct {
	estimateService portssvc.EstimateSvcFacade
}

func newEstimateHandler(es portssvc.EstimateSvcFacade) *estimateHandler {
	return &estimateHandler{
		estimateService: es,
	}
}

// registerEstimateRoutes registers all estimate-related routes.
func registerEstimateRoutes(rg *gin.RouterGroup, estimateService portssvc.EstimateSvcFacade) {
	h := newEstimateHandler(estimateService)

	estimates := rg.Group("/estimates")
	{
		estimates.POST("", h.createEstimate)
		estimates.GET("", h.listEstimates)
		estimates.GET("/:id", h.getEstimate)
	}
}

// createEstimate godoc
// @Summary Create an estimate
// @Description Creates a quote document. Estimates never touch wallet balances or payment fields.
// @Tags estimates
// @Accept  json
// @Produce  json
// @Param   estimate body dto.CreateEstimateRequest true "Estimate details"
// @Success 201 {object} dto.EstimateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Customer mobile conflict"
// @Security BearerAuth
// @Router /estimates [post]
func (h *estimateHandler) createEstimate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create estimate request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create estimate", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEstimateResponse(estimate))
}

// getEstimate godoc
// @Summary Get an estimate by ID
// @Description Retrieves an estimate with its items. Clients see only their own estimates; employees only their branch's.
// @Tags estimates
// @Produce  json
// @Param   id path string true "Estimate ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Estimate not found"
// @Security BearerAuth
// @Router /estimates/{id} [get]
func (h *estimateHandler) getEstimate(c *gin.Context) {
	estimateID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	estimate, err := h.estimateService.GetEstimateByID(c.Request.Context(), estimateID, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// listEstimates godoc
// @Summary List estimates
// @Description Retrieves estimates visible to the caller, newest first, with cursor pagination.
// @Tags estimates
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Param   branch_id query string false "Branch filter (admin only)"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListEstimatesResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /estimates [get]
func (h *estimateHandler) listEstimates(c *gin.Context) {
	var params dto.ListEstimatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	if params.To != nil {
		end := params.To.AddDate(0, 0, 1)
		params.To = &end
	}

	resp, err := h.estimateService.ListEstimates(c.Request.Context(), params, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
