package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// CustomerReaderSvc defines read operations for the shared customer registry
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by their ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// SearchCustomers finds customers whose name or mobile matches the query.
	SearchCustomers(ctx context.Context, query string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// UpdateCustomer updates an existing customer's details. A mobile number
	// already owned by a different customer yields ErrConflict.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
