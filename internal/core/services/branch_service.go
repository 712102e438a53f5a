package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// branchService provides branch management operations.
type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{
		branchRepo: branchRepo,
		userRepo:   userRepo,
	}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) requireAdmin(ctx context.Context, requestingUserID string) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateBranch persists a new branch. Admin only.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		logger.Warn("Authorization failed for CreateBranch", slog.String("user_id", creatorUserID))
		return nil, err
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, req.Timezone)
		}
	}

	now := time.Now().UTC()
	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		Timezone: req.Timezone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		logger.Error("Failed to save branch", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	return &branch, nil
}

func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, branchID)
}

func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx)
}

// UpdateBranch updates a branch's details. Admin only.
func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, requestingUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for UpdateBranch", slog.String("user_id", requestingUserID))
		return nil, err
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		branch.Name = *req.Name
		updated = true
	}
	if req.Code != nil {
		branch.Code = *req.Code
		updated = true
	}
	if req.Address != nil {
		branch.Address = *req.Address
		updated = true
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, *req.Timezone)
		}
		branch.Timezone = *req.Timezone
		updated = true
	}

	if !updated {
		return branch, nil
	}

	branch.LastUpdatedAt = time.Now().UTC()
	branch.LastUpdatedBy = requestingUserID

	if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		logger.Error("Failed to update branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	logger.Info("Branch updated", slog.String("branch_id", branchID))
	return branch, nil
}
