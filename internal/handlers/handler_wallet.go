package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to client wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// registerWalletRoutes registers all wallet-related routes.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.PUT("/update", h.updateWallet)           // Admin only
		wallets.PUT("/permissions", h.updatePermissions) // Admin only
		wallets.GET("/:clientId", h.getWallet)
		wallets.GET("/:clientId/transactions", h.listTransactions)
	}
}

// updateWallet godoc
// @Summary Apply an admin wallet action
// @Description Adds funds to, deducts funds from, or settles a client wallet. Settle zeroes the balance and records the amount cleared; any submitted amount is ignored for settle. Admin only.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   action body dto.UpdateWalletRequest true "Wallet action"
// @Success 204 "Applied"
// @Failure 400 {object} ErrorResponse "Invalid action or amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /wallets/update [put]
func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	txn, err := h.walletService.ApplyAdminAction(c.Request.Context(), req, requestingUserID)
	if err != nil {
		logger.Error("Failed to apply wallet action",
			slog.String("error", err.Error()),
			slog.String("client_id", req.ClientID),
			slog.String("action", req.Action))
		respondError(c, err)
		return
	}

	logger.Info("Wallet action applied",
		slog.String("client_id", req.ClientID),
		slog.String("action", req.Action),
		slog.String("transaction_id", txn.TransactionID))
	c.Status(http.StatusNoContent)
}

// updatePermissions godoc
// @Summary Update negative-balance permission
// @Description Grants or revokes a client's permission to carry a negative wallet balance, optionally until a deadline. Admin only.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   permissions body dto.WalletPermissionsRequest true "Permission settings"
// @Success 204 "Updated"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /wallets/permissions [put]
func (h *walletHandler) updatePermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WalletPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	if err := h.walletService.UpdatePermissions(c.Request.Context(), req, requestingUserID); err != nil {
		logger.Error("Failed to update wallet permissions",
			slog.String("error", err.Error()),
			slog.String("client_id", req.ClientID))
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getWallet godoc
// @Summary Get a client's wallet
// @Description Retrieves the wallet balance and negative-balance settings of a client. Clients may only read their own wallet.
// @Tags wallets
// @Produce  json
// @Param   clientId path string true "Client user ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /wallets/{clientId} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	clientID := c.Param("clientId")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	client, err := h.walletService.GetWallet(c.Request.Context(), clientID, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(client))
}

// listTransactions godoc
// @Summary List wallet transactions
// @Description Retrieves a client's ledger entries, newest first, with cursor pagination. Clients may only read their own ledger.
// @Tags wallets
// @Produce  json
// @Param   clientId path string true "Client user ID"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListWalletTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /wallets/{clientId}/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	clientID := c.Param("clientId")

	var params dto.ListWalletTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	resp, err := h.walletService.ListTransactions(c.Request.Context(), clientID, params, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
