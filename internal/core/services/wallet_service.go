package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// walletService applies admin wallet actions and reads ledger state. All
// balance mutations go through the repository, which locks the user row and
// appends the ledger entry in the same transaction.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) requireAdmin(ctx context.Context, requestingUserID string) error {
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

// loadClient loads the target user and checks it carries a wallet.
func (s *walletService) loadClient(ctx context.Context, clientID string) (*domain.User, error) {
	client, err := s.userRepo.FindUserByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, fmt.Errorf("%w: user %s is not a client", apperrors.ErrValidation, clientID)
	}
	return client, nil
}

// ApplyAdminAction handles add, deduct and settle against a client wallet.
func (s *walletService) ApplyAdminAction(ctx context.Context, req dto.UpdateWalletRequest, requestingUserID string) (*domain.WalletTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for ApplyAdminAction", slog.String("user_id", requestingUserID))
		return nil, err
	}

	action := domain.WalletAction(req.Action)
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: unknown wallet action %q", apperrors.ErrValidation, req.Action)
	}

	client, err := s.loadClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	amount := decimal.Zero
	switch action {
	case domain.WalletActionAdd, domain.WalletActionDeduct:
		if req.Amount == nil || !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: a positive amount is required for %s", apperrors.ErrValidation, action)
		}
		amount = *req.Amount
		if action == domain.WalletActionDeduct &&
			client.WalletBalance.Sub(amount).IsNegative() && !client.CanGoNegative(now) {
			return nil, fmt.Errorf("%w: insufficient wallet balance", apperrors.ErrValidation)
		}
	case domain.WalletActionSettle:
		// Settle zeroes the balance; any submitted amount is ignored.
	}

	txn, err := s.walletRepo.ApplyAdminAction(ctx, req.ClientID, action, amount, req.Notes, requestingUserID, now)
	if err != nil {
		logger.Error("Failed to apply wallet action", slog.String("error", err.Error()), slog.String("client_id", req.ClientID), slog.String("action", string(action)))
		return nil, err
	}

	logger.Info("Wallet action applied",
		slog.String("client_id", req.ClientID),
		slog.String("action", string(action)),
		slog.String("amount_deducted", txn.AmountDeducted.String()),
	)
	return txn, nil
}

// UpdatePermissions sets the negative-balance permission for a client.
func (s *walletService) UpdatePermissions(ctx context.Context, req dto.WalletPermissionsRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for UpdatePermissions", slog.String("user_id", requestingUserID))
		return err
	}

	if _, err := s.loadClient(ctx, req.ClientID); err != nil {
		return err
	}
	if !req.Allow && req.Until != nil {
		return fmt.Errorf("%w: until cannot be set when revoking the permission", apperrors.ErrValidation)
	}

	if err := s.walletRepo.UpdateWalletPermissions(ctx, req.ClientID, req.Allow, req.Until, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to update wallet permissions", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return err
	}

	logger.Info("Wallet permissions updated", slog.String("client_id", req.ClientID), slog.Bool("allow_negative", req.Allow))
	return nil
}

// GetWallet returns a client's wallet state. Clients may only read their own.
func (s *walletService) GetWallet(ctx context.Context, clientID string, requestingUserID string) (*domain.User, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Role == domain.RoleClient && requester.UserID != clientID {
		return nil, apperrors.ErrForbidden
	}

	return s.loadClient(ctx, clientID)
}

// ListTransactions returns a client's ledger entries, newest first.
func (s *walletService) ListTransactions(ctx context.Context, clientID string, params dto.ListWalletTransactionsParams, requestingUserID string) (*dto.ListWalletTransactionsResponse, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Role == domain.RoleClient && requester.UserID != clientID {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.loadClient(ctx, clientID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.walletRepo.ListTransactionsByUserID(ctx, clientID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wallet transactions: %w", err)
	}

	return &dto.ListWalletTransactionsResponse{
		Transactions: dto.ToWalletTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
