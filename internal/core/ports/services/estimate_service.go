package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// EstimateWriterSvc defines write operations for estimates
type EstimateWriterSvc interface {
	// CreateEstimate validates the payload, resolves the customer and persists
	// the estimate atomically. Estimates are quotes and never touch wallets.
	CreateEstimate(ctx context.Context, req dto.CreateEstimateRequest, creatorUserID string) (*domain.Estimate, error)
}

// EstimateReaderSvc defines read operations for estimates
type EstimateReaderSvc interface {
	// GetEstimateByID retrieves an estimate with its items. Clients may only
	// read their own estimates.
	GetEstimateByID(ctx context.Context, estimateID string, requestingUserID string) (*domain.Estimate, error)

	// ListEstimates retrieves a paginated list of estimates visible to the user.
	ListEstimates(ctx context.Context, params dto.ListEstimatesParams, requestingUserID string) (*dto.ListEstimatesResponse, error)
}

// EstimateSvcFacade combines all estimate-related service interfaces
type EstimateSvcFacade interface {
	EstimateWriterSvc
	EstimateReaderSvc
}
