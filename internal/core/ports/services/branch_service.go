package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// BranchReaderSvc defines read operations for branch data
type BranchReaderSvc interface {
	// GetBranchByID retrieves a specific branch by its ID.
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves all branches.
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriterSvc defines write operations for branch data
type BranchWriterSvc interface {
	// CreateBranch persists a new branch.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	// UpdateBranch updates an existing branch's details.
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, requestingUserID string) (*domain.Branch, error)
}

// BranchSvcFacade combines all branch-related service interfaces
type BranchSvcFacade interface {
	BranchReaderSvc
	BranchWriterSvc
}
