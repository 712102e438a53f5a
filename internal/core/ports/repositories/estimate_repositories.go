package repositories

import (
	"context"
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// EstimateWriter persists quote documents.
type EstimateWriter interface {
	// SaveEstimate writes the estimate header and its items, resolving the
	// customer, all within one database transaction.
	SaveEstimate(ctx context.Context, estimate domain.Estimate, items []domain.EstimateItem, customer domain.CustomerInput) (*domain.Estimate, error)
}

// EstimateReader reads quote documents.
type EstimateReader interface {
	FindEstimateByID(ctx context.Context, estimateID string) (*domain.Estimate, error)
	FindItemsByEstimateID(ctx context.Context, estimateID string) ([]domain.EstimateItem, error)
	ListEstimatesByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Estimate, *string, error)
	ListEstimatesByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Estimate, *string, error)
}

// EstimateRepositoryFacade combines all estimate repository interfaces.
type EstimateRepositoryFacade interface {
	EstimateWriter
	EstimateReader
}
