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
	"github.com/medibill/diagnostics_billing_app/internal/platform/config"
)

// estimateService creates and reads estimates. Estimates are quotes: they
// resolve customers like receipts do, but never touch wallet balances.
type estimateService struct {
	estimateRepo portsrepo.EstimateRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	branchRepo   portsrepo.BranchRepositoryFacade
	cfg          *config.Config
}

// NewEstimateService creates a new estimate service.
func NewEstimateService(
	estimateRepo portsrepo.EstimateRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	cfg *config.Config,
) portssvc.EstimateSvcFacade {
	return &estimateService{
		estimateRepo: estimateRepo,
		userRepo:     userRepo,
		branchRepo:   branchRepo,
		cfg:          cfg,
	}
}

var _ portssvc.EstimateSvcFacade = (*estimateService)(nil)

// CreateEstimate validates the payload and persists the estimate atomically.
func (s *estimateService) CreateEstimate(ctx context.Context, req dto.CreateEstimateRequest, creatorUserID string) (*domain.Estimate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	if err := validateDocumentItems(req.Items); err != nil {
		return nil, err
	}
	if req.CustomerData.CustomerID == nil && req.CustomerData.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required for new customers", apperrors.ErrValidation)
	}
	if req.TotalMRP.IsNegative() || req.AmountAfterDiscount.IsNegative() || req.AmountFinal.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, actor.BranchID)
	if err != nil {
		logger.Error("Failed to load actor branch", slog.String("error", err.Error()), slog.String("branch_id", actor.BranchID))
		return nil, fmt.Errorf("failed to load branch %s: %w", actor.BranchID, err)
	}

	now := time.Now().UTC()
	estimateID := uuid.NewString()
	estimate := domain.Estimate{
		EstimateID:          estimateID,
		BranchID:            actor.BranchID,
		TotalMRP:            req.TotalMRP,
		AmountAfterDiscount: req.AmountAfterDiscount,
		AmountFinal:         req.AmountFinal,
		ReferredBy:          req.ReferredBy,
		Notes:               req.Notes,
		CreatedAtDisplay:    formatDisplayTimestamp(now, branch.Timezone, s.cfg.DefaultBranchTimezone),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := make([]domain.EstimateItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.EstimateItem{
			ItemID:             uuid.NewString(),
			EstimateID:         estimateID,
			Position:           i + 1,
			PackageName:        item.Name,
			MRP:                item.MRP,
			DiscountPercentage: item.Discount,
			B2BPrice:           itemB2BPrice(item),
		}
	}

	saved, err := s.estimateRepo.SaveEstimate(ctx, estimate, items, req.CustomerData.ToDomainInput())
	if err != nil {
		logger.Error("Failed to save estimate", slog.String("error", err.Error()), slog.String("estimate_id", estimateID))
		return nil, err
	}

	logger.Info("Estimate created",
		slog.String("estimate_id", saved.EstimateID),
		slog.Int64("estimate_number", saved.EstimateNumber),
		slog.String("branch_id", saved.BranchID),
	)
	return saved, nil
}

// GetEstimateByID retrieves an estimate with its items, enforcing the same
// visibility rules as receipts.
func (s *estimateService) GetEstimateByID(ctx context.Context, estimateID string, requestingUserID string) (*domain.Estimate, error) {
	actor, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	estimate, err := s.estimateRepo.FindEstimateByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleClient:
		if estimate.CreatedBy != actor.UserID {
			return nil, apperrors.ErrNotFound
		}
	case domain.RoleGeneralEmployee:
		if estimate.BranchID != actor.BranchID {
			return nil, apperrors.ErrNotFound
		}
	}

	items, err := s.estimateRepo.FindItemsByEstimateID(ctx, estimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items for estimate %s: %w", estimateID, err)
	}
	estimate.Items = items

	return estimate, nil
}

// ListEstimates retrieves estimates visible to the user with cursor pagination.
func (s *estimateService) ListEstimates(ctx context.Context, params dto.ListEstimatesParams, requestingUserID string) (*dto.ListEstimatesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var estimates []domain.Estimate
	var nextToken *string
	switch actor.Role {
	case domain.RoleClient:
		estimates, nextToken, err = s.estimateRepo.ListEstimatesByCreator(ctx, actor.UserID, limit, params.NextToken)
	case domain.RoleGeneralEmployee:
		estimates, nextToken, err = s.estimateRepo.ListEstimatesByBranch(ctx, actor.BranchID, limit, params.NextToken, params.From, params.To)
	default:
		branchID := params.BranchID
		if branchID == "" {
			branchID = actor.BranchID
		}
		estimates, nextToken, err = s.estimateRepo.ListEstimatesByBranch(ctx, branchID, limit, params.NextToken, params.From, params.To)
	}
	if err != nil {
		logger.Error("Failed to list estimates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve estimates: %w", err)
	}

	responses := make([]dto.EstimateResponse, len(estimates))
	for i := range estimates {
		responses[i] = dto.ToEstimateResponse(&estimates[i])
	}

	return &dto.ListEstimatesResponse{
		Estimates: responses,
		NextToken: nextToken,
	}, nil
}
