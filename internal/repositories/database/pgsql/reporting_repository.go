package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	"github.com/medibill/diagnostics_billing_app/internal/models"
	"github.com/medibill/diagnostics_billing_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// ReportingRepository runs the read-only aggregate queries. It bypasses the
// model layer where a query has no backing table.
type ReportingRepository struct {
	db *pgxpool.Pool
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{db: db}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// GetBranchDailySummaries aggregates receipts per UTC day within [from, to).
func (r *ReportingRepository) GetBranchDailySummaries(ctx context.Context, branchID string, from time.Time, to time.Time) ([]domain.BranchDailySummary, error) {
	query := `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*),
			COALESCE(SUM(total_mrp), 0),
			COALESCE(SUM(amount_final), 0),
			COALESCE(SUM(amount_received), 0),
			COALESCE(SUM(amount_due), 0)
		FROM receipts
		WHERE branch_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY day
		ORDER BY day ASC;
	`
	rows, err := r.db.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.BranchDailySummary
	for rows.Next() {
		var s domain.BranchDailySummary
		err := rows.Scan(
			&s.Date,
			&s.ReceiptCount,
			&s.TotalMRP,
			&s.AmountFinal,
			&s.AmountReceived,
			&s.AmountDue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}
	return summaries, nil
}

// SumWalletDeductionsBefore returns the signed sum of amount_deducted for a
// user's ledger entries strictly before the given instant.
func (r *ReportingRepository) SumWalletDeductionsBefore(ctx context.Context, userID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_deducted), 0)
		FROM wallet_transactions
		WHERE user_id = $1 AND created_at < $2;
	`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, before).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet deductions: %w", err)
	}
	return sum, nil
}

// FindWalletTransactionsInRange returns a user's ledger entries within
// [from, to), oldest first.
func (r *ReportingRepository) FindWalletTransactionsInRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.WalletTransaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wallet_transactions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC, transaction_id ASC;
	`, walletTxnColumns)
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.WalletTransaction
	for rows.Next() {
		m, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet transaction rows: %w", err)
	}
	return mapping.ToDomainWalletTransactionSlice(txns), nil
}
