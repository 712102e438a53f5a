package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateWalletRequest is the PUT /wallets/update payload.
type UpdateWalletRequest struct {
	ClientID string           `json:"clientId" binding:"required"`
	Action   string           `json:"action" binding:"required,oneof=add deduct settle"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}

// WalletPermissionsRequest is the PUT /wallets/permissions payload.
type WalletPermissionsRequest struct {
	ClientID string     `json:"clientId" binding:"required"`
	Allow    bool       `json:"allow"`
	Until    *time.Time `json:"until,omitempty"`
}

// WalletResponse exposes a client's wallet state.
type WalletResponse struct {
	UserID                      string          `json:"userID"`
	WalletBalance               decimal.Decimal `json:"walletBalance"`
	AllowNegativeBalance        bool            `json:"allowNegativeBalance"`
	NegativeBalanceAllowedUntil *time.Time      `json:"negativeBalanceAllowedUntil,omitempty"`
}

// ToWalletResponse converts a domain user to its wallet view.
func ToWalletResponse(u *domain.User) WalletResponse {
	return WalletResponse{
		UserID:                      u.UserID,
		WalletBalance:               u.WalletBalance,
		AllowNegativeBalance:        u.AllowNegativeBalance,
		NegativeBalanceAllowedUntil: u.NegativeBalanceAllowedUntil,
	}
}

// WalletTransactionResponse is the API representation of a ledger entry.
type WalletTransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	UserID         string          `json:"userID"`
	Type           string          `json:"type"`
	AmountDeducted decimal.Decimal `json:"amountDeducted"`
	Notes          string          `json:"notes"`
	ReceiptID      *string         `json:"receiptID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToWalletTransactionResponse converts a domain ledger entry.
func ToWalletTransactionResponse(t *domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		TransactionID:  t.TransactionID,
		UserID:         t.UserID,
		Type:           string(t.Type),
		AmountDeducted: t.AmountDeducted,
		Notes:          t.Notes,
		ReceiptID:      t.ReceiptID,
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
	}
}

// ToWalletTransactionResponses converts a slice of ledger entries.
func ToWalletTransactionResponses(txns []domain.WalletTransaction) []WalletTransactionResponse {
	out := make([]WalletTransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToWalletTransactionResponse(&txns[i])
	}
	return out
}

// ListWalletTransactionsParams defines query parameters for the ledger.
type ListWalletTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"next_token"`
}

// ListWalletTransactionsResponse wraps a page of ledger entries.
type ListWalletTransactionsResponse struct {
	Transactions []WalletTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}
