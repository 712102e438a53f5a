package services

import (
	"context"
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only reporting operations for admins.
type ReportingSvcFacade interface {
	// GetBranchDailySummaries aggregates a branch's receipts per day over a range.
	GetBranchDailySummaries(ctx context.Context, branchID string, from, to time.Time, requestingUserID string) ([]domain.BranchDailySummary, error)

	// GetWalletStatement builds a client's ledger statement over a range,
	// including opening and closing balances derived from the ledger.
	GetWalletStatement(ctx context.Context, clientID string, from, to time.Time, requestingUserID string) (*domain.WalletStatement, error)
}
