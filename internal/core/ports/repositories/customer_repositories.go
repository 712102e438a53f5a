package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by their ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByMobile retrieves the live customer owning the given
	// mobile number, or ErrNotFound.
	FindCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error)

	// SearchCustomers finds customers whose name or mobile matches the query.
	SearchCustomers(ctx context.Context, query string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// UpdateCustomer updates an existing customer's mutable fields.
	// A mobile number collision with a different customer yields ErrConflict.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerResolver resolves or creates a customer inside an open transaction,
// as part of a document write. A mobile number owned by a different customer
// yields ErrConflict; the storage-level unique index turns a concurrent
// insert race into the same error.
type CustomerResolver interface {
	ResolveCustomerInTx(ctx context.Context, tx pgx.Tx, input domain.CustomerInput, actorUserID string, now time.Time) (string, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	CustomerResolver
}
