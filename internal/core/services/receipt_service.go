package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
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

// receiptService creates and reads receipts. Creation is the money path: the
// customer is resolved, the receipt persisted and any client wallet debit
// applied in one database transaction by the repository.
type receiptService struct {
	receiptRepo portsrepo.ReceiptRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	branchRepo  portsrepo.BranchRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
	cfg         *config.Config
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	cfg *config.Config,
) portssvc.ReceiptSvcFacade {
	return &receiptService{
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		branchRepo:  branchRepo,
		catalogRepo: catalogRepo,
		cfg:         cfg,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// CreateReceipt validates the payload and persists the receipt atomically.
// The branch is the actor's branch; it is never taken from the payload.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	if err := validateDocumentItems(req.Items); err != nil {
		return nil, nil, err
	}
	if req.CustomerData.CustomerID == nil && req.CustomerData.Name == "" {
		return nil, nil, fmt.Errorf("%w: customer name is required for new customers", apperrors.ErrValidation)
	}
	if req.TotalMRP.IsNegative() || req.AmountAfterDiscount.IsNegative() || req.AmountFinal.IsNegative() || req.AmountReceived.IsNegative() {
		return nil, nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	// The client wallet debit is the sum of B2B prices across items. Staff
	// receipts never touch wallets.
	var debit *domain.WalletDebit
	if actor.Role == domain.RoleClient {
		if req.PackageListID == "" {
			return nil, nil, fmt.Errorf("%w: package_list_id is required for client billing", apperrors.ErrValidation)
		}
		grantedIDs, err := s.catalogRepo.ListPackageListIDsForUser(ctx, actor.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load package list grants: %w", err)
		}
		if !slices.Contains(grantedIDs, req.PackageListID) {
			logger.Warn("Client attempted to bill against an ungranted package list", slog.String("user_id", actor.UserID), slog.String("package_list_id", req.PackageListID))
			return nil, nil, fmt.Errorf("%w: package list is not granted to this client", apperrors.ErrForbidden)
		}

		debitAmount := sumB2BPrices(req.Items)
		if debitAmount.IsPositive() {
			if actor.WalletBalance.Sub(debitAmount).IsNegative() && !actor.CanGoNegative(now) {
				return nil, nil, fmt.Errorf("%w: insufficient wallet balance", apperrors.ErrValidation)
			}
			debit = &domain.WalletDebit{
				UserID: actor.UserID,
				Amount: debitAmount,
				Notes:  "B2B billing deduction",
			}
		}
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, actor.BranchID)
	if err != nil {
		logger.Error("Failed to load actor branch", slog.String("error", err.Error()), slog.String("branch_id", actor.BranchID))
		return nil, nil, fmt.Errorf("failed to load branch %s: %w", actor.BranchID, err)
	}

	receiptID := uuid.NewString()
	receipt := domain.Receipt{
		ReceiptID:           receiptID,
		BranchID:            actor.BranchID,
		TotalMRP:            req.TotalMRP,
		AmountAfterDiscount: req.AmountAfterDiscount,
		AmountFinal:         req.AmountFinal,
		AmountReceived:      req.AmountReceived,
		AmountDue:           req.AmountFinal.Sub(req.AmountReceived),
		PaymentMethod:       req.PaymentMethod,
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

	items := make([]domain.ReceiptItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.ReceiptItem{
			ItemID:             uuid.NewString(),
			ReceiptID:          receiptID,
			Position:           i + 1,
			PackageName:        item.Name,
			MRP:                item.MRP,
			DiscountPercentage: item.Discount,
			B2BPrice:           itemB2BPrice(item),
		}
	}

	saved, updatedUser, err := s.receiptRepo.SaveReceipt(ctx, receipt, items, req.CustomerData.ToDomainInput(), debit)
	if err != nil {
		logger.Error("Failed to save receipt", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
		return nil, nil, err
	}

	logger.Info("Receipt created",
		slog.String("receipt_id", saved.ReceiptID),
		slog.Int64("receipt_number", saved.ReceiptNumber),
		slog.String("branch_id", saved.BranchID),
		slog.Bool("wallet_debited", updatedUser != nil),
	)
	return saved, updatedUser, nil
}

// GetReceiptByID retrieves a receipt with its items, enforcing visibility:
// admins see all, employees their branch, clients their own documents.
func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string, requestingUserID string) (*domain.Receipt, error) {
	actor, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleClient:
		if receipt.CreatedBy != actor.UserID {
			return nil, apperrors.ErrNotFound
		}
	case domain.RoleGeneralEmployee:
		if receipt.BranchID != actor.BranchID {
			return nil, apperrors.ErrNotFound
		}
	}

	items, err := s.receiptRepo.FindItemsByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items for receipt %s: %w", receiptID, err)
	}
	receipt.Items = items

	return receipt, nil
}

// ListReceipts retrieves receipts visible to the user with cursor pagination.
func (s *receiptService) ListReceipts(ctx context.Context, params dto.ListReceiptsParams, requestingUserID string) (*dto.ListReceiptsResponse, error) {
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

	var receipts []domain.Receipt
	var nextToken *string
	switch actor.Role {
	case domain.RoleClient:
		receipts, nextToken, err = s.receiptRepo.ListReceiptsByCreator(ctx, actor.UserID, limit, params.NextToken)
	case domain.RoleGeneralEmployee:
		receipts, nextToken, err = s.receiptRepo.ListReceiptsByBranch(ctx, actor.BranchID, limit, params.NextToken, params.From, params.To)
	default:
		branchID := params.BranchID
		if branchID == "" {
			branchID = actor.BranchID
		}
		receipts, nextToken, err = s.receiptRepo.ListReceiptsByBranch(ctx, branchID, limit, params.NextToken, params.From, params.To)
	}
	if err != nil {
		logger.Error("Failed to list receipts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve receipts: %w", err)
	}

	responses := make([]dto.ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = dto.ToReceiptResponse(&receipts[i])
	}

	return &dto.ListReceiptsResponse{
		Receipts:  responses,
		NextToken: nextToken,
	}, nil
}
