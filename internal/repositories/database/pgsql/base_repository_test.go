package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_customers_mobile_active"}
	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert customer: %w", uniqueErr)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestPrefixColumns(t *testing.T) {
	got := prefixColumns("r", "receipt_id, branch_id,created_at")
	assert.Equal(t, "r.receipt_id, r.branch_id, r.created_at", got)

	assert.Equal(t, "w.transaction_id", prefixColumns("w", "transaction_id"))
}
