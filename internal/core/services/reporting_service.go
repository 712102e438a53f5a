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
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// reportingService serves read-only aggregates for admins. Wallet statement
// balances are derived from the ledger, not the cached balance column.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		userRepo:      userRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) requireAdmin(ctx context.Context, requestingUserID string) error {
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

// GetBranchDailySummaries aggregates a branch's receipts per day. Admin only.
func (s *reportingService) GetBranchDailySummaries(ctx context.Context, branchID string, from, to time.Time, requestingUserID string) ([]domain.BranchDailySummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for GetBranchDailySummaries", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", apperrors.ErrValidation)
	}

	summaries, err := s.reportingRepo.GetBranchDailySummaries(ctx, branchID, from, to)
	if err != nil {
		logger.Error("Failed to aggregate branch summaries", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to aggregate branch summaries: %w", err)
	}
	return summaries, nil
}

// GetWalletStatement builds a client's ledger statement over a range. The
// opening balance is the negated sum of amount_deducted before the range;
// the closing balance subtracts the in-range deductions from it.
func (s *reportingService) GetWalletStatement(ctx context.Context, clientID string, from, to time.Time, requestingUserID string) (*domain.WalletStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for GetWalletStatement", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", apperrors.ErrValidation)
	}

	client, err := s.userRepo.FindUserByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, fmt.Errorf("%w: user %s is not a client", apperrors.ErrValidation, clientID)
	}

	deductedBefore, err := s.reportingRepo.SumWalletDeductionsBefore(ctx, clientID, from)
	if err != nil {
		logger.Error("Failed to sum prior wallet deductions", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	openingBalance := deductedBefore.Neg()

	txns, err := s.reportingRepo.FindWalletTransactionsInRange(ctx, clientID, from, to)
	if err != nil {
		logger.Error("Failed to load wallet transactions", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to load wallet transactions: %w", err)
	}

	closingBalance := openingBalance
	for _, txn := range txns {
		closingBalance = closingBalance.Sub(txn.AmountDeducted)
	}

	return &domain.WalletStatement{
		UserID:         clientID,
		From:           from,
		To:             to,
		OpeningBalance: openingBalance,
		ClosingBalance: closingBalance,
		Transactions:   txns,
	}, nil
}
