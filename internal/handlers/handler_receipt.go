package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// receiptHandler handles HTTP requests related to receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{
		receiptService: rs,
	}
}

// registerReceiptRoutes registers all receipt-related routes.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:id", h.getReceipt)
	}
}

// createReceipt godoc
// @Summary Create a receipt
// @Description Creates a billing receipt. The branch is the creator's branch. For client accounts the receipt's B2B total is debited from the wallet in the same transaction; the response then carries the updated account.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.CreateReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient wallet balance"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Package list not granted"
// @Failure 409 {object} ErrorResponse "Customer mobile conflict"
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create receipt request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	receipt, updatedUser, err := h.receiptService.CreateReceipt(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create receipt", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	resp := dto.CreateReceiptResponse{
		NewReceipt: dto.ToReceiptResponse(receipt),
	}
	if updatedUser != nil {
		u := dto.ToUserResponse(updatedUser)
		resp.UpdatedUser = &u
	}

	c.JSON(http.StatusCreated, resp)
}

// getReceipt godoc
// @Summary Get a receipt by ID
// @Description Retrieves a receipt with its items. Clients see only their own receipts; employees only their branch's.
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{id} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	receiptID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Description Retrieves receipts visible to the caller, newest first, with cursor pagination. The optional date window is inclusive of both days.
// @Tags receipts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Param   branch_id query string false "Branch filter (admin only)"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	var params dto.ListReceiptsParams
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
	if params.To != nil {
		end := params.To.AddDate(0, 0, 1)
		params.To = &end
	}

	resp, err := h.receiptService.ListReceipts(c.Request.Context(), params, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
