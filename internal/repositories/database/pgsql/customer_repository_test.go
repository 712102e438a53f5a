package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// stubRow feeds canned values into a Scan destination list.
type stubRow struct {
	err        error
	customerID string
	name       string
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.customerID
	*dest[2].(*string) = r.name
	return nil
}

// stubTx satisfies pgx.Tx for the two calls ResolveCustomerInTx makes; the
// embedded nil interface panics on anything unexpected.
type stubTx struct {
	pgx.Tx
	queryRow func(sql string, args ...any) pgx.Row
	exec     func(sql string, args ...any) (pgconn.CommandTag, error)
}

func (t stubTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return t.queryRow(sql, args...)
}

func (t stubTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.exec(sql, args...)
}

func strP(s string) *string { return &s }

func TestResolveCustomerInTx_MobileOwnedByAnotherConflicts(t *testing.T) {
	repo := &PgxCustomerRepository{}
	ownerID := uuid.NewString()

	tx := stubTx{
		queryRow: func(sql string, args ...any) pgx.Row {
			assert.Contains(t, sql, "WHERE mobile = $1")
			assert.Equal(t, "9876543210", args[0])
			return stubRow{customerID: ownerID, name: "Asha Rao"}
		},
		exec: func(sql string, args ...any) (pgconn.CommandTag, error) {
			t.Fatal("no row may be written when the mobile number is taken")
			return pgconn.CommandTag{}, nil
		},
	}

	input := domain.CustomerInput{Name: "Someone Else", Mobile: strP("9876543210")}
	id, err := repo.ResolveCustomerInTx(context.Background(), tx, input, uuid.NewString(), time.Now().UTC())

	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), ownerID)
	assert.Contains(t, err.Error(), "Asha Rao")
	assert.Empty(t, id)
}

func TestResolveCustomerInTx_UnclaimedMobileInsertsFreshCustomer(t *testing.T) {
	repo := &PgxCustomerRepository{}

	var insertedArgs []any
	tx := stubTx{
		queryRow: func(sql string, args ...any) pgx.Row {
			return stubRow{err: pgx.ErrNoRows}
		},
		exec: func(sql string, args ...any) (pgconn.CommandTag, error) {
			assert.Contains(t, sql, "INSERT INTO customers")
			insertedArgs = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	input := domain.CustomerInput{Name: "New Patient", Mobile: strP("9000000001")}
	id, err := repo.ResolveCustomerInTx(context.Background(), tx, input, uuid.NewString(), time.Now().UTC())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NotEmpty(t, insertedArgs)
	assert.Equal(t, id, insertedArgs[0])
	assert.Equal(t, "New Patient", insertedArgs[2])
}
