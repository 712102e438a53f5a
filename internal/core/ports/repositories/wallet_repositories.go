package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletWriter mutates wallet balances. Every balance change locks the user
// row and appends exactly one ledger entry in the same transaction.
type WalletWriter interface {
	// ApplyAdminAction performs an add/deduct/settle on a client wallet.
	// It returns the ledger entry it appended.
	ApplyAdminAction(ctx context.Context, clientID string, action domain.WalletAction, amount decimal.Decimal, notes string, actorUserID string, now time.Time) (*domain.WalletTransaction, error)

	// DebitForReceiptInTx debits the wallet for a receipt inside an open
	// transaction and returns the updated user.
	DebitForReceiptInTx(ctx context.Context, tx pgx.Tx, debit domain.WalletDebit, receiptID string, now time.Time) (*domain.User, error)

	// UpdateWalletPermissions sets the negative-balance permission fields.
	UpdateWalletPermissions(ctx context.Context, clientID string, allow bool, until *time.Time, actorUserID string, now time.Time) error
}

// WalletReader reads wallet ledger data.
type WalletReader interface {
	// ListTransactionsByUserID returns ledger entries newest first with
	// cursor pagination.
	ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error)
}

// WalletRepositoryFacade combines all wallet repository interfaces.
type WalletRepositoryFacade interface {
	WalletWriter
	WalletReader
}
