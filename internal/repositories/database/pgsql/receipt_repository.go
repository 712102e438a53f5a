package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	"github.com/medibill/diagnostics_billing_app/internal/models"
	"github.com/medibill/diagnostics_billing_app/internal/utils/mapping"
	"github.com/medibill/diagnostics_billing_app/internal/utils/pagination"
)

const receiptColumns = `receipt_id, receipt_number, customer_id, branch_id,
		total_mrp, amount_after_discount, amount_final, amount_received, amount_due,
		payment_method, referred_by, notes, created_at_display,
		created_at, created_by, last_updated_at, last_updated_by`

const receiptItemColumns = `item_id, receipt_id, position, package_name, mrp,
		discount_percentage, b2b_price`

// PgxReceiptRepository persists receipts. The write path runs in a single
// transaction: the customer is resolved, the header and items inserted and
// any wallet debit applied, so a failed debit leaves no orphan receipt.
type PgxReceiptRepository struct {
	BaseRepository
	customers portsrepo.CustomerResolver
	wallets   portsrepo.WalletWriter
}

func newPgxReceiptRepository(db *pgxpool.Pool, customers portsrepo.CustomerResolver, wallets portsrepo.WalletWriter) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: db},
		customers:      customers,
		wallets:        wallets,
	}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

func scanReceipt(row pgx.Row) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.ReceiptNumber,
		&m.CustomerID,
		&m.BranchID,
		&m.TotalMRP,
		&m.AmountAfterDiscount,
		&m.AmountFinal,
		&m.AmountReceived,
		&m.AmountDue,
		&m.PaymentMethod,
		&m.ReferredBy,
		&m.Notes,
		&m.CreatedAtDisplay,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanReceiptItem(row pgx.Row) (models.ReceiptItem, error) {
	var m models.ReceiptItem
	err := row.Scan(
		&m.ItemID,
		&m.ReceiptID,
		&m.Position,
		&m.PackageName,
		&m.MRP,
		&m.DiscountPercentage,
		&m.B2BPrice,
	)
	return m, err
}

func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, items []domain.ReceiptItem, customer domain.CustomerInput, debit *domain.WalletDebit) (*domain.Receipt, *domain.User, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	customerID, err := r.customers.ResolveCustomerInTx(ctx, tx, customer, receipt.CreatedBy, receipt.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	receipt.CustomerID = customerID

	m := mapping.ToModelReceipt(receipt)
	headerQuery := `
		INSERT INTO receipts (receipt_id, customer_id, branch_id,
			total_mrp, amount_after_discount, amount_final, amount_received, amount_due,
			payment_method, referred_by, notes, created_at_display,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING receipt_number;
	`
	err = tx.QueryRow(ctx, headerQuery,
		m.ReceiptID,
		m.CustomerID,
		m.BranchID,
		m.TotalMRP,
		m.AmountAfterDiscount,
		m.AmountFinal,
		m.AmountReceived,
		m.AmountDue,
		m.PaymentMethod,
		m.ReferredBy,
		m.Notes,
		m.CreatedAtDisplay,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&receipt.ReceiptNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert receipt header: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO receipt_items (item_id, receipt_id, position, package_name, mrp, discount_percentage, b2b_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range items {
		im := mapping.ToModelReceiptItem(item)
		batch.Queue(itemQuery, im.ItemID, im.ReceiptID, im.Position, im.PackageName, im.MRP, im.DiscountPercentage, im.B2BPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, nil, fmt.Errorf("failed to insert receipt item: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to close receipt item batch: %w", err)
	}

	var updatedUser *domain.User
	if debit != nil {
		updatedUser, err = r.wallets.DebitForReceiptInTx(ctx, tx, *debit, receipt.ReceiptID, receipt.CreatedAt)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	receipt.Items = items
	return &receipt, updatedUser, nil
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := fmt.Sprintf(`SELECT %s FROM receipts WHERE receipt_id = $1;`, receiptColumns)
	m, err := scanReceipt(r.Pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt by ID %s: %w", receiptID, err)
	}
	d := mapping.ToDomainReceipt(m)
	return &d, nil
}

func (r *PgxReceiptRepository) FindItemsByReceiptID(ctx context.Context, receiptID string) ([]domain.ReceiptItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM receipt_items WHERE receipt_id = $1 ORDER BY position ASC;`, receiptItemColumns)
	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReceiptItem
	for rows.Next() {
		m, err := scanReceiptItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt item row: %w", err)
		}
		items = append(items, mapping.ToDomainReceiptItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt item rows: %w", err)
	}
	return items, nil
}

func (r *PgxReceiptRepository) ListReceiptsByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Receipt, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM receipts WHERE branch_id = $1`, receiptColumns)
	args := []any{branchID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	return r.listReceipts(ctx, query, args, limit, nextToken)
}

func (r *PgxReceiptRepository) ListReceiptsByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM receipts WHERE created_by = $1`, receiptColumns)
	return r.listReceipts(ctx, query, []any{userID}, limit, nextToken)
}

// listReceipts applies cursor pagination over (created_at, receipt_id) to a
// prebuilt filter query and runs it, newest first.
func (r *PgxReceiptRepository) listReceipts(ctx context.Context, query string, args []any, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

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
		query += fmt.Sprintf(` AND (created_at, receipt_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, receipt_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}

	var token *string
	if len(receipts) > limit {
		receipts = receipts[:limit]
		last := receipts[len(receipts)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.ReceiptID)
		token = &t
	}

	result := make([]domain.Receipt, len(receipts))
	for i, m := range receipts {
		result[i] = mapping.ToDomainReceipt(m)
	}
	return result, token, nil
}
