package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// customerService provides operations on the shared customer registry.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) SearchCustomers(ctx context.Context, query string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.customerRepo.SearchCustomers(ctx, query, limit, offset)
}

// UpdateCustomer updates a customer's mutable fields. A mobile number that
// already belongs to a different customer is rejected with ErrConflict; the
// storage-level unique index catches the concurrent case.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Prefix != nil {
		customer.Prefix = *req.Prefix
		updated = true
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: customer name must not be empty", apperrors.ErrValidation)
		}
		customer.Name = *req.Name
		updated = true
	}
	if req.Mobile != nil {
		if *req.Mobile != "" {
			owner, err := s.customerRepo.FindCustomerByMobile(ctx, *req.Mobile)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check mobile ownership: %w", err)
			}
			if owner != nil && owner.CustomerID != customerID {
				return nil, fmt.Errorf("%w: mobile number %s belongs to customer %s (%s)", apperrors.ErrConflict, *req.Mobile, owner.CustomerID, owner.Name)
			}
			customer.Mobile = req.Mobile
		} else {
			customer.Mobile = nil
		}
		updated = true
	}
	if req.DOB != nil {
		customer.DOB = req.DOB
		updated = true
	}
	if req.Age != nil {
		customer.Age = req.Age
		updated = true
	}
	if req.Gender != nil {
		customer.Gender = *req.Gender
		updated = true
	}

	if !updated {
		return customer, nil
	}

	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}
