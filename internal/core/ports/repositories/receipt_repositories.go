package repositories

import (
	"context"
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// ReceiptWriter persists billing documents.
type ReceiptWriter interface {
	// SaveReceipt writes the receipt header and its items, resolving the
	// customer and applying the optional wallet debit, all within one
	// database transaction. It returns the persisted receipt (customer id
	// and receipt number filled in) and, when a debit was applied, the
	// updated actor record.
	SaveReceipt(ctx context.Context, receipt domain.Receipt, items []domain.ReceiptItem, customer domain.CustomerInput, debit *domain.WalletDebit) (*domain.Receipt, *domain.User, error)
}

// ReceiptReader reads billing documents.
type ReceiptReader interface {
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	FindItemsByReceiptID(ctx context.Context, receiptID string) ([]domain.ReceiptItem, error)

	// ListReceiptsByBranch returns receipts for a branch, newest first,
	// with cursor pagination and an optional date window.
	ListReceiptsByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Receipt, *string, error)

	// ListReceiptsByCreator returns receipts created by a user, newest first.
	ListReceiptsByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error)
}

// ReceiptRepositoryFacade combines all receipt repository interfaces.
type ReceiptRepositoryFacade interface {
	ReceiptWriter
	ReceiptReader
}
