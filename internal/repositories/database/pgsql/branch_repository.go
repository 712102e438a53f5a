package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	"github.com/medibill/diagnostics_billing_app/internal/models"
	"github.com/medibill/diagnostics_billing_app/internal/utils/mapping"
)

const branchColumns = `branch_id, name, code, address, timezone,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxBranchRepository struct {
	db *pgxpool.Pool
}

func newPgxBranchRepository(db *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{db: db}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func scanBranch(row pgx.Row) (models.Branch, error) {
	var m models.Branch
	err := row.Scan(
		&m.BranchID,
		&m.Name,
		&m.Code,
		&m.Address,
		&m.Timezone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		INSERT INTO branches (branch_id, name, code, address, timezone,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.BranchID,
		m.Name,
		m.Code,
		m.Address,
		m.Timezone,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: branch code %s already exists", apperrors.ErrConflict, branch.Code)
		}
		return fmt.Errorf("failed to save branch: %w", err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE branch_id = $1;`, branchColumns)
	m, err := scanBranch(r.db.QueryRow(ctx, query, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}
	d := mapping.ToDomainBranch(m)
	return &d, nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches ORDER BY name ASC;`, branchColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		m, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, mapping.ToDomainBranch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}
	return branches, nil
}

func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		UPDATE branches SET
			name = $2,
			code = $3,
			address = $4,
			timezone = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE branch_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.BranchID,
		m.Name,
		m.Code,
		m.Address,
		m.Timezone,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: branch code %s already exists", apperrors.ErrConflict, branch.Code)
		}
		return fmt.Errorf("failed to update branch %s: %w", branch.BranchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
