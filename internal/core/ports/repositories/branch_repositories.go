package repositories

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// BranchReader defines read operations for branch data.
type BranchReader interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriter defines write operations for branch data.
type BranchWriter interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	UpdateBranch(ctx context.Context, branch domain.Branch) error
}

// BranchRepositoryFacade combines all branch-related repository interfaces.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
