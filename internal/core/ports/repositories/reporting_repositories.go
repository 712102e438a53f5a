package repositories

import (
	"context"
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade provides read-only aggregate projections.
type ReportingRepositoryFacade interface {
	// GetBranchDailySummaries aggregates receipts per UTC day for a branch.
	GetBranchDailySummaries(ctx context.Context, branchID string, from time.Time, to time.Time) ([]domain.BranchDailySummary, error)

	// SumWalletDeductionsBefore returns the signed sum of amount_deducted
	// for a user's ledger entries strictly before the given instant.
	SumWalletDeductionsBefore(ctx context.Context, userID string, before time.Time) (decimal.Decimal, error)

	// FindWalletTransactionsInRange returns a user's ledger entries within
	// [from, to), oldest first.
	FindWalletTransactionsInRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.WalletTransaction, error)
}
