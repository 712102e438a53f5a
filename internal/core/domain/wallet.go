package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransactionType classifies a ledger entry.
type WalletTransactionType string

const (
	TxnReceiptDeduction WalletTransactionType = "RECEIPT_DEDUCTION"
	TxnAdminCredit      WalletTransactionType = "ADMIN_CREDIT"
	TxnAdminDebit       WalletTransactionType = "ADMIN_DEBIT"
	TxnSettlement       WalletTransactionType = "SETTLEMENT"
)

// WalletTransaction is one entry in a client's wallet ledger.
// AmountDeducted is signed: positive means the balance decreased, negative
// means it increased. The running sum of -AmountDeducted in creation order,
// starting from zero, equals the user's current wallet balance; the stored
// balance is a cached projection of this log.
type WalletTransaction struct {
	TransactionID  string                `json:"transactionID"`
	UserID         string                `json:"userID"`
	Type           WalletTransactionType `json:"type"`
	AmountDeducted decimal.Decimal       `json:"amountDeducted"`
	Notes          string                `json:"notes"`
	ReceiptID      *string               `json:"receiptID,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// WalletDebit is a pending deduction applied alongside a receipt write.
type WalletDebit struct {
	UserID string
	Amount decimal.Decimal
	Notes  string
}

// WalletAction is an admin-initiated wallet operation.
type WalletAction string

const (
	WalletActionAdd    WalletAction = "add"
	WalletActionDeduct WalletAction = "deduct"
	WalletActionSettle WalletAction = "settle"
)

// IsValid reports whether the action is one of the known wallet actions.
func (a WalletAction) IsValid() bool {
	switch a {
	case WalletActionAdd, WalletActionDeduct, WalletActionSettle:
		return true
	}
	return false
}
