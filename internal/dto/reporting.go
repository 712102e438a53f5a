package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRangeParams defines the date window for reporting queries.
type ReportingRangeParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// BranchDailySummaryResponse is one day's aggregate for a branch.
type BranchDailySummaryResponse struct {
	Date           string          `json:"date"`
	ReceiptCount   int64           `json:"receiptCount"`
	TotalMRP       decimal.Decimal `json:"totalMRP"`
	AmountFinal    decimal.Decimal `json:"amountFinal"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	AmountDue      decimal.Decimal `json:"amountDue"`
}

// BranchSummaryReportResponse wraps a branch's daily summaries.
type BranchSummaryReportResponse struct {
	BranchID  string                       `json:"branchID"`
	Summaries []BranchDailySummaryResponse `json:"summaries"`
}

// ToBranchSummaryReportResponse converts the domain aggregates.
func ToBranchSummaryReportResponse(branchID string, summaries []domain.BranchDailySummary) BranchSummaryReportResponse {
	out := make([]BranchDailySummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = BranchDailySummaryResponse{
			Date:           s.Date,
			ReceiptCount:   s.ReceiptCount,
			TotalMRP:       s.TotalMRP,
			AmountFinal:    s.AmountFinal,
			AmountReceived: s.AmountReceived,
			AmountDue:      s.AmountDue,
		}
	}
	return BranchSummaryReportResponse{BranchID: branchID, Summaries: out}
}

// WalletStatementResponse is a client's ledger over a date range.
type WalletStatementResponse struct {
	UserID         string                      `json:"userID"`
	From           time.Time                   `json:"from"`
	To             time.Time                   `json:"to"`
	OpeningBalance decimal.Decimal             `json:"openingBalance"`
	ClosingBalance decimal.Decimal             `json:"closingBalance"`
	Transactions   []WalletTransactionResponse `json:"transactions"`
}

// ToWalletStatementResponse converts the domain statement.
func ToWalletStatementResponse(s *domain.WalletStatement) WalletStatementResponse {
	return WalletStatementResponse{
		UserID:         s.UserID,
		From:           s.From,
		To:             s.To,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Transactions:   ToWalletTransactionResponses(s.Transactions),
	}
}
