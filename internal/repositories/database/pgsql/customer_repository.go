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
)

const customerColumns = `customer_id, prefix, name, mobile, dob, age, gender,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxCustomerRepository struct {
	db *pgxpool.Pool
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{db: db}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Prefix,
		&m.Name,
		&m.Mobile,
		&m.DOB,
		&m.Age,
		&m.Gender,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE customer_id = $1 AND deleted_at IS NULL;`, customerColumns)
	m, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

func (r *PgxCustomerRepository) FindCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE mobile = $1 AND deleted_at IS NULL;`, customerColumns)
	m, err := scanCustomer(r.db.QueryRow(ctx, query, mobile))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by mobile: %w", err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

func (r *PgxCustomerRepository) SearchCustomers(ctx context.Context, query string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	sqlQuery := fmt.Sprintf(`
		SELECT %s FROM customers
		WHERE deleted_at IS NULL
		  AND (name ILIKE '%%' || $1 || '%%' OR mobile LIKE '%%' || $1 || '%%')
		ORDER BY name ASC, customer_id ASC
		LIMIT $2 OFFSET $3;
	`, customerColumns)
	rows, err := r.db.Query(ctx, sqlQuery, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return mapping.ToDomainCustomerSlice(customers), nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers SET
			prefix = $2,
			name = $3,
			mobile = $4,
			dob = $5,
			age = $6,
			gender = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE customer_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.CustomerID,
		m.Prefix,
		m.Name,
		m.Mobile,
		m.DOB,
		m.Age,
		m.Gender,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.mobileConflictError(ctx, m.Mobile)
		}
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ResolveCustomerInTx finds or creates the customer a document is billed to,
// inside the caller's open transaction. An explicit customer ID refreshes that
// customer with the provided fields. Without an ID, a mobile number already
// owned by a live customer is a conflict naming that customer; the document is
// never silently attached to them. Otherwise a fresh row is inserted, and the
// partial unique index on live mobile numbers turns a concurrent insert race
// into ErrConflict.
func (r *PgxCustomerRepository) ResolveCustomerInTx(ctx context.Context, tx pgx.Tx, input domain.CustomerInput, actorUserID string, now time.Time) (string, error) {
	if input.CustomerID != nil && *input.CustomerID != "" {
		return r.refreshExistingInTx(ctx, tx, *input.CustomerID, input, actorUserID, now)
	}

	if input.Mobile != nil && *input.Mobile != "" {
		query := fmt.Sprintf(`SELECT %s FROM customers WHERE mobile = $1 AND deleted_at IS NULL;`, customerColumns)
		m, err := scanCustomer(tx.QueryRow(ctx, query, *input.Mobile))
		if err == nil {
			return "", fmt.Errorf("%w: mobile number belongs to customer %s (%s)", apperrors.ErrConflict, m.CustomerID, m.Name)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("failed to look up customer by mobile: %w", err)
		}
	}

	customerID := uuid.NewString()
	query := `
		INSERT INTO customers (customer_id, prefix, name, mobile, dob, age, gender,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		customerID,
		input.Prefix,
		input.Name,
		input.Mobile,
		input.DOB,
		input.Age,
		input.Gender,
		now,
		actorUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", r.mobileConflictError(ctx, input.Mobile)
		}
		return "", fmt.Errorf("failed to insert customer: %w", err)
	}
	return customerID, nil
}

// mobileConflictError builds an ErrConflict naming the live customer that
// owns the mobile number. The lookup runs on the pool because the caller's
// transaction is already aborted after a unique violation; if the owner
// cannot be read the message stays generic.
func (r *PgxCustomerRepository) mobileConflictError(ctx context.Context, mobile *string) error {
	if mobile != nil && *mobile != "" {
		query := fmt.Sprintf(`SELECT %s FROM customers WHERE mobile = $1 AND deleted_at IS NULL;`, customerColumns)
		if m, err := scanCustomer(r.db.QueryRow(ctx, query, *mobile)); err == nil {
			return fmt.Errorf("%w: mobile number belongs to customer %s (%s)", apperrors.ErrConflict, m.CustomerID, m.Name)
		}
	}
	return fmt.Errorf("%w: mobile number belongs to another customer", apperrors.ErrConflict)
}

// refreshExistingInTx locks the customer row and overlays the provided
// fields onto it. Empty strings and nil pointers leave the stored value.
func (r *PgxCustomerRepository) refreshExistingInTx(ctx context.Context, tx pgx.Tx, customerID string, input domain.CustomerInput, actorUserID string, now time.Time) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE customer_id = $1 AND deleted_at IS NULL FOR UPDATE;`, customerColumns)
	m, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return "", fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}

	if input.Prefix != "" {
		m.Prefix = input.Prefix
	}
	if input.Name != "" {
		m.Name = input.Name
	}
	if input.Mobile != nil && *input.Mobile != "" {
		m.Mobile = input.Mobile
	}
	if input.DOB != nil {
		m.DOB = input.DOB
	}
	if input.Age != nil {
		m.Age = input.Age
	}
	if input.Gender != "" {
		m.Gender = input.Gender
	}

	updateQuery := `
		UPDATE customers SET
			prefix = $2,
			name = $3,
			mobile = $4,
			dob = $5,
			age = $6,
			gender = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE customer_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.CustomerID,
		m.Prefix,
		m.Name,
		m.Mobile,
		m.DOB,
		m.Age,
		m.Gender,
		now,
		actorUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", r.mobileConflictError(ctx, m.Mobile)
		}
		return "", fmt.Errorf("failed to refresh customer %s: %w", customerID, err)
	}
	return m.CustomerID, nil
}
