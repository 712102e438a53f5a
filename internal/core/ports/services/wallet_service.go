package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// WalletWriterSvc defines admin write operations on client wallets
type WalletWriterSvc interface {
	// ApplyAdminAction handles add, deduct and settle against a client wallet
	// and returns the appended ledger entry.
	ApplyAdminAction(ctx context.Context, req dto.UpdateWalletRequest, requestingUserID string) (*domain.WalletTransaction, error)

	// UpdatePermissions sets the negative-balance permission for a client.
	UpdatePermissions(ctx context.Context, req dto.WalletPermissionsRequest, requestingUserID string) error
}

// WalletReaderSvc defines read operations on wallet state
type WalletReaderSvc interface {
	// GetWallet returns the wallet fields of a client. Clients may only read
	// their own wallet.
	GetWallet(ctx context.Context, clientID string, requestingUserID string) (*domain.User, error)

	// ListTransactions returns a client's ledger entries, newest first.
	ListTransactions(ctx context.Context, clientID string, params dto.ListWalletTransactionsParams, requestingUserID string) (*dto.ListWalletTransactionsResponse, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletWriterSvc
	WalletReaderSvc
}
