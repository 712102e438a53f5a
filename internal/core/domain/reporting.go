package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchDailySummary aggregates one day's receipts for a branch.
type BranchDailySummary struct {
	Date           string          `json:"date"` // YYYY-MM-DD in UTC
	ReceiptCount   int64           `json:"receiptCount"`
	TotalMRP       decimal.Decimal `json:"totalMRP"`
	AmountFinal    decimal.Decimal `json:"amountFinal"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	AmountDue      decimal.Decimal `json:"amountDue"`
}

// WalletStatement is a client's ledger over a date range. Opening and closing
// balances are derived from the transaction log, not the cached balance.
type WalletStatement struct {
	UserID         string              `json:"userID"`
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
	Transactions   []WalletTransaction `json:"transactions"`
}
