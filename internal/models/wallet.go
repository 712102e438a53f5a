package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransaction is the wallet_transactions table row.
type WalletTransaction struct {
	TransactionID  string          `db:"transaction_id"`
	UserID         string          `db:"user_id"`
	Type           string          `db:"type"`
	AmountDeducted decimal.Decimal `db:"amount_deducted"`
	Notes          string          `db:"notes"`
	ReceiptID      *string         `db:"receipt_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
