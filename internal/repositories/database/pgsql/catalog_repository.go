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

const labColumns = `lab_id, name, description,
		created_at, created_by, last_updated_at, last_updated_by`

const packageListColumns = `package_list_id, name, description,
		created_at, created_by, last_updated_at, last_updated_by`

const packageColumns = `package_id, package_list_id, name, mrp, b2b_price,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(db *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func scanLab(row pgx.Row) (models.Lab, error) {
	var m models.Lab
	err := row.Scan(
		&m.LabID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPackageList(row pgx.Row) (models.PackageList, error) {
	var m models.PackageList
	err := row.Scan(
		&m.PackageListID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPackage(row pgx.Row) (models.Package, error) {
	var m models.Package
	err := row.Scan(
		&m.PackageID,
		&m.PackageListID,
		&m.Name,
		&m.MRP,
		&m.B2BPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCatalogRepository) SaveLab(ctx context.Context, lab domain.Lab) error {
	m := mapping.ToModelLab(lab)
	query := `
		INSERT INTO labs (lab_id, name, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LabID, m.Name, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save lab: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindLabByID(ctx context.Context, labID string) (*domain.Lab, error) {
	query := fmt.Sprintf(`SELECT %s FROM labs WHERE lab_id = $1;`, labColumns)
	m, err := scanLab(r.Pool.QueryRow(ctx, query, labID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lab by ID %s: %w", labID, err)
	}
	d := mapping.ToDomainLab(m)
	return &d, nil
}

func (r *PgxCatalogRepository) ListLabs(ctx context.Context) ([]domain.Lab, error) {
	query := fmt.Sprintf(`SELECT %s FROM labs ORDER BY name ASC;`, labColumns)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query labs: %w", err)
	}
	defer rows.Close()

	var labs []domain.Lab
	for rows.Next() {
		m, err := scanLab(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab row: %w", err)
		}
		labs = append(labs, mapping.ToDomainLab(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab rows: %w", err)
	}
	return labs, nil
}

func (r *PgxCatalogRepository) UpdateLab(ctx context.Context, lab domain.Lab) error {
	m := mapping.ToModelLab(lab)
	query := `
		UPDATE labs SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE lab_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.LabID, m.Name, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update lab %s: %w", lab.LabID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) SavePackageList(ctx context.Context, list domain.PackageList) error {
	m := mapping.ToModelPackageList(list)
	query := `
		INSERT INTO package_lists (package_list_id, name, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PackageListID, m.Name, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save package list: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindPackageListByID(ctx context.Context, packageListID string) (*domain.PackageList, error) {
	query := fmt.Sprintf(`SELECT %s FROM package_lists WHERE package_list_id = $1;`, packageListColumns)
	m, err := scanPackageList(r.Pool.QueryRow(ctx, query, packageListID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package list by ID %s: %w", packageListID, err)
	}
	d := mapping.ToDomainPackageList(m)
	return &d, nil
}

func (r *PgxCatalogRepository) ListPackageLists(ctx context.Context) ([]domain.PackageList, error) {
	query := fmt.Sprintf(`SELECT %s FROM package_lists ORDER BY name ASC;`, packageListColumns)
	return r.queryPackageLists(ctx, query)
}

func (r *PgxCatalogRepository) ListPackageListsByLabID(ctx context.Context, labID string) ([]domain.PackageList, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM package_lists pl
		JOIN lab_package_lists lpl ON lpl.package_list_id = pl.package_list_id
		WHERE lpl.lab_id = $1
		ORDER BY pl.name ASC;
	`, prefixColumns("pl", packageListColumns))
	return r.queryPackageLists(ctx, query, labID)
}

func (r *PgxCatalogRepository) ListPackageListsForUser(ctx context.Context, userID string) ([]domain.PackageList, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM package_lists pl
		JOIN user_package_lists upl ON upl.package_list_id = pl.package_list_id
		WHERE upl.user_id = $1
		ORDER BY pl.name ASC;
	`, prefixColumns("pl", packageListColumns))
	return r.queryPackageLists(ctx, query, userID)
}

func (r *PgxCatalogRepository) queryPackageLists(ctx context.Context, query string, args ...any) ([]domain.PackageList, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query package lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.PackageList
	for rows.Next() {
		m, err := scanPackageList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package list row: %w", err)
		}
		lists = append(lists, mapping.ToDomainPackageList(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package list rows: %w", err)
	}
	return lists, nil
}

func (r *PgxCatalogRepository) UpdatePackageList(ctx context.Context, list domain.PackageList) error {
	m := mapping.ToModelPackageList(list)
	query := `
		UPDATE package_lists SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE package_list_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PackageListID, m.Name, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update package list %s: %w", list.PackageListID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) LinkLabPackageList(ctx context.Context, labID string, packageListID string) error {
	query := `
		INSERT INTO lab_package_lists (lab_id, package_list_id)
		VALUES ($1, $2)
		ON CONFLICT (lab_id, package_list_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, labID, packageListID)
	if err != nil {
		return fmt.Errorf("failed to link package list %s to lab %s: %w", packageListID, labID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UnlinkLabPackageList(ctx context.Context, labID string, packageListID string) error {
	query := `DELETE FROM lab_package_lists WHERE lab_id = $1 AND package_list_id = $2;`
	_, err := r.Pool.Exec(ctx, query, labID, packageListID)
	if err != nil {
		return fmt.Errorf("failed to unlink package list %s from lab %s: %w", packageListID, labID, err)
	}
	return nil
}

// ReplaceUserPackageLists swaps a user's granted lists in one transaction so
// a concurrent read never sees a partially applied grant set.
func (r *PgxCatalogRepository) ReplaceUserPackageLists(ctx context.Context, userID string, packageListIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_package_lists WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to clear package list grants for user %s: %w", userID, err)
	}

	batch := &pgx.Batch{}
	for _, listID := range packageListIDs {
		batch.Queue(`INSERT INTO user_package_lists (user_id, package_list_id) VALUES ($1, $2);`, userID, listID)
	}
	br := tx.SendBatch(ctx, batch)
	for range packageListIDs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to grant package list to user %s: %w", userID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close grant batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCatalogRepository) ListPackageListIDsForUser(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT package_list_id FROM user_package_lists WHERE user_id = $1;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query package list grants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan grant row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grant rows: %w", err)
	}
	return ids, nil
}

func (r *PgxCatalogRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	m := mapping.ToModelPackage(pkg)
	query := `
		INSERT INTO packages (package_id, package_list_id, name, mrp, b2b_price,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PackageID, m.PackageListID, m.Name, m.MRP, m.B2BPrice,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save package: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error) {
	query := fmt.Sprintf(`SELECT %s FROM packages WHERE package_id = $1;`, packageColumns)
	m, err := scanPackage(r.Pool.QueryRow(ctx, query, packageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package by ID %s: %w", packageID, err)
	}
	d := mapping.ToDomainPackage(m)
	return &d, nil
}

func (r *PgxCatalogRepository) ListPackagesByListID(ctx context.Context, packageListID string) ([]domain.Package, error) {
	query := fmt.Sprintf(`SELECT %s FROM packages WHERE package_list_id = $1 ORDER BY name ASC;`, packageColumns)
	rows, err := r.Pool.Query(ctx, query, packageListID)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		m, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		packages = append(packages, mapping.ToDomainPackage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package rows: %w", err)
	}
	return packages, nil
}

func (r *PgxCatalogRepository) UpdatePackage(ctx context.Context, pkg domain.Package) error {
	m := mapping.ToModelPackage(pkg)
	query := `
		UPDATE packages SET name = $2, mrp = $3, b2b_price = $4, last_updated_at = $5, last_updated_by = $6
		WHERE package_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PackageID, m.Name, m.MRP, m.B2BPrice, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update package %s: %w", pkg.PackageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
