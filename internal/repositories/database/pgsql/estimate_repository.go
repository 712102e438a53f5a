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

const estimateColumns = `estimate_id, estimate_number, customer_id, branch_id,
		total_mrp, amount_after_discount, amount_final,
		referred_by, notes, created_at_display,
		created_at, created_by, last_updated_at, last_updated_by`

const estimateItemColumns = `item_id, estimate_id, position, package_name, mrp,
		discount_percentage, b2b_price`

// PgxEstimateRepository persists estimates. Estimates share the receipt write
// shape minus the wallet debit.
type PgxEstimateRepository struct {
	BaseRepository
	customers portsrepo.CustomerResolver
}

func newPgxEstimateRepository(db *pgxpool.Pool, customers portsrepo.CustomerResolver) portsrepo.EstimateRepositoryFacade {
	return &PgxEstimateRepository{
		BaseRepository: BaseRepository{Pool: db},
		customers:      customers,
	}
}

var _ portsrepo.EstimateRepositoryFacade = (*PgxEstimateRepository)(nil)

func scanEstimate(row pgx.Row) (models.Estimate, error) {
	var m models.Estimate
	err := row.Scan(
		&m.EstimateID,
		&m.EstimateNumber,
		&m.CustomerID,
		&m.BranchID,
		&m.TotalMRP,
		&m.AmountAfterDiscount,
		&m.AmountFinal,
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

func scanEstimateItem(row pgx.Row) (models.EstimateItem, error) {
	var m models.EstimateItem
	err := row.Scan(
		&m.ItemID,
		&m.EstimateID,
		&m.Position,
		&m.PackageName,
		&m.MRP,
		&m.DiscountPercentage,
		&m.B2BPrice,
	)
	return m, err
}

func (r *PgxEstimateRepository) SaveEstimate(ctx context.Context, estimate domain.Estimate, items []domain.EstimateItem, customer domain.CustomerInput) (*domain.Estimate, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	customerID, err := r.customers.ResolveCustomerInTx(ctx, tx, customer, estimate.CreatedBy, estimate.CreatedAt)
	if err != nil {
		return nil, err
	}
	estimate.CustomerID = customerID

	m := mapping.ToModelEstimate(estimate)
	headerQuery := `
		INSERT INTO estimates (estimate_id, customer_id, branch_id,
			total_mrp, amount_after_discount, amount_final,
			referred_by, notes, created_at_display,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING estimate_number;
	`
	err = tx.QueryRow(ctx, headerQuery,
		m.EstimateID,
		m.CustomerID,
		m.BranchID,
		m.TotalMRP,
		m.AmountAfterDiscount,
		m.AmountFinal,
		m.ReferredBy,
		m.Notes,
		m.CreatedAtDisplay,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&estimate.EstimateNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to insert estimate header: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO estimate_items (item_id, estimate_id, position, package_name, mrp, discount_percentage, b2b_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range items {
		im := mapping.ToModelEstimateItem(item)
		batch.Queue(itemQuery, im.ItemID, im.EstimateID, im.Position, im.PackageName, im.MRP, im.DiscountPercentage, im.B2BPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("failed to insert estimate item: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close estimate item batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	estimate.Items = items
	return &estimate, nil
}

func (r *PgxEstimateRepository) FindEstimateByID(ctx context.Context, estimateID string) (*domain.Estimate, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimates WHERE estimate_id = $1;`, estimateColumns)
	m, err := scanEstimate(r.Pool.QueryRow(ctx, query, estimateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find estimate by ID %s: %w", estimateID, err)
	}
	d := mapping.ToDomainEstimate(m)
	return &d, nil
}

func (r *PgxEstimateRepository) FindItemsByEstimateID(ctx context.Context, estimateID string) ([]domain.EstimateItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimate_items WHERE estimate_id = $1 ORDER BY position ASC;`, estimateItemColumns)
	rows, err := r.Pool.Query(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query estimate items: %w", err)
	}
	defer rows.Close()

	var items []domain.EstimateItem
	for rows.Next() {
		m, err := scanEstimateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan estimate item row: %w", err)
		}
		items = append(items, mapping.ToDomainEstimateItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating estimate item rows: %w", err)
	}
	return items, nil
}

func (r *PgxEstimateRepository) ListEstimatesByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Estimate, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimates WHERE branch_id = $1`, estimateColumns)
	args := []any{branchID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	return r.listEstimates(ctx, query, args, limit, nextToken)
}

func (r *PgxEstimateRepository) ListEstimatesByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Estimate, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimates WHERE created_by = $1`, estimateColumns)
	return r.listEstimates(ctx, query, []any{userID}, limit, nextToken)
}

func (r *PgxEstimateRepository) listEstimates(ctx context.Context, query string, args []any, limit int, nextToken *string) ([]domain.Estimate, *string, error) {
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
		query += fmt.Sprintf(` AND (created_at, estimate_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, estimate_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query estimates: %w", err)
	}
	defer rows.Close()

	var estimates []models.Estimate
	for rows.Next() {
		m, err := scanEstimate(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan estimate row: %w", err)
		}
		estimates = append(estimates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating estimate rows: %w", err)
	}

	var token *string
	if len(estimates) > limit {
		estimates = estimates[:limit]
		last := estimates[len(estimates)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.EstimateID)
		token = &t
	}

	result := make([]domain.Estimate, len(estimates))
	for i, m := range estimates {
		result[i] = mapping.ToDomainEstimate(m)
	}
	return result, token, nil
}
