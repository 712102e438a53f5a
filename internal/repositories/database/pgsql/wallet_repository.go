package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	"github.com/medibill/diagnostics_billing_app/internal/models"
	"github.com/medibill/diagnostics_billing_app/internal/utils/mapping"
	"github.com/medibill/diagnostics_billing_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const walletTxnColumns = `transaction_id, user_id, type, amount_deducted, notes,
		receipt_id, created_at, created_by`

// PgxWalletRepository mutates wallet balances. Every mutation locks the user
// row, updates the cached balance and appends a ledger entry in the same
// transaction, so the balance column always matches the ledger sum.
type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(db *pgxpool.Pool) *PgxWalletRepository {
	return &PgxWalletRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func scanWalletTransaction(row pgx.Row) (models.WalletTransaction, error) {
	var m models.WalletTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.AmountDeducted,
		&m.Notes,
		&m.ReceiptID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// lockUserRow selects the user row FOR UPDATE inside the given transaction.
func lockUserRow(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE;`, userColumns)
	m, err := scanUser(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user row %s: %w", userID, err)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func setWalletBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, balance decimal.Decimal, actorUserID string, now time.Time) error {
	query := `
		UPDATE users SET wallet_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := tx.Exec(ctx, query, userID, balance, now, actorUserID); err != nil {
		return fmt.Errorf("failed to update wallet balance for user %s: %w", userID, err)
	}
	return nil
}

func insertWalletTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.WalletTransaction) error {
	m := mapping.ToModelWalletTransaction(txn)
	query := `
		INSERT INTO wallet_transactions (transaction_id, user_id, type, amount_deducted,
			notes, receipt_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.AmountDeducted,
		m.Notes,
		m.ReceiptID,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wallet transaction: %w", err)
	}
	return nil
}

// ApplyAdminAction performs an add, deduct or settle against a client wallet.
// AmountDeducted is signed: positive shrinks the balance. Settle records the
// locked balance itself as the deduction and zeroes the column, so the amount
// argument is irrelevant for it. A deduct may only push the balance below
// zero when the locked row carries a live negative-balance permission.
func (r *PgxWalletRepository) ApplyAdminAction(ctx context.Context, clientID string, action domain.WalletAction, amount decimal.Decimal, notes string, actorUserID string, now time.Time) (*domain.WalletTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	client, err := lockUserRow(ctx, tx, clientID)
	if err != nil {
		return nil, err
	}

	var txnType domain.WalletTransactionType
	var amountDeducted decimal.Decimal
	var newBalance decimal.Decimal
	switch action {
	case domain.WalletActionAdd:
		txnType = domain.TxnAdminCredit
		amountDeducted = amount.Neg()
		newBalance = client.WalletBalance.Add(amount)
	case domain.WalletActionDeduct:
		txnType = domain.TxnAdminDebit
		amountDeducted = amount
		newBalance = client.WalletBalance.Sub(amount)
		if newBalance.IsNegative() && !client.CanGoNegative(now) {
			return nil, fmt.Errorf("%w: insufficient wallet balance", apperrors.ErrValidation)
		}
	case domain.WalletActionSettle:
		txnType = domain.TxnSettlement
		amountDeducted = client.WalletBalance
		newBalance = decimal.Zero
	default:
		return nil, fmt.Errorf("%w: unknown wallet action %q", apperrors.ErrValidation, action)
	}

	if err := setWalletBalanceInTx(ctx, tx, clientID, newBalance, actorUserID, now); err != nil {
		return nil, err
	}

	txn := domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         clientID,
		Type:           txnType,
		AmountDeducted: amountDeducted,
		Notes:          notes,
		CreatedAt:      now,
		CreatedBy:      actorUserID,
	}
	if err := insertWalletTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// DebitForReceiptInTx deducts a receipt's B2B total from the creator's wallet
// inside the caller's open transaction. The negative balance gate is checked
// here, against the locked row, so concurrent receipts cannot both pass a
// stale pre-check.
func (r *PgxWalletRepository) DebitForReceiptInTx(ctx context.Context, tx pgx.Tx, debit domain.WalletDebit, receiptID string, now time.Time) (*domain.User, error) {
	client, err := lockUserRow(ctx, tx, debit.UserID)
	if err != nil {
		return nil, err
	}

	newBalance := client.WalletBalance.Sub(debit.Amount)
	if newBalance.IsNegative() && !client.CanGoNegative(now) {
		return nil, fmt.Errorf("%w: insufficient wallet balance", apperrors.ErrValidation)
	}

	if err := setWalletBalanceInTx(ctx, tx, debit.UserID, newBalance, debit.UserID, now); err != nil {
		return nil, err
	}

	txn := domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         debit.UserID,
		Type:           domain.TxnReceiptDeduction,
		AmountDeducted: debit.Amount,
		Notes:          debit.Notes,
		ReceiptID:      &receiptID,
		CreatedAt:      now,
		CreatedBy:      debit.UserID,
	}
	if err := insertWalletTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	client.WalletBalance = newBalance
	client.LastUpdatedAt = now
	client.LastUpdatedBy = debit.UserID
	return client, nil
}

func (r *PgxWalletRepository) UpdateWalletPermissions(ctx context.Context, clientID string, allow bool, until *time.Time, actorUserID string, now time.Time) error {
	query := `
		UPDATE users SET
			allow_negative_balance = $2,
			negative_balance_allowed_until = $3,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, clientID, allow, until, now, actorUserID)
	if err != nil {
		return fmt.Errorf("failed to update wallet permissions for user %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTransactionsByUserID returns ledger entries newest first with cursor
// pagination over (created_at, transaction_id).
func (r *PgxWalletRepository) ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := fmt.Sprintf(`SELECT %s FROM wallet_transactions WHERE user_id = $1`, walletTxnColumns)
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, cursorCreatedAt, fields[1])
		query += fmt.Sprintf(` AND (created_at, transaction_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.WalletTransaction
	for rows.Next() {
		m, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan wallet transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating wallet transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.TransactionID)
		token = &t
	}

	return mapping.ToDomainWalletTransactionSlice(txns), token, nil
}
