package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// ReceiptWriterSvc defines write operations for receipts
type ReceiptWriterSvc interface {
	// CreateReceipt validates the payload, resolves the customer, persists the
	// receipt and, for client actors, debits the wallet, all atomically. It
	// returns the stored receipt and, when a debit was applied, the actor's
	// updated user record (nil otherwise).
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, *domain.User, error)
}

// ReceiptReaderSvc defines read operations for receipts
type ReceiptReaderSvc interface {
	// GetReceiptByID retrieves a receipt with its items. Clients may only read
	// their own receipts.
	GetReceiptByID(ctx context.Context, receiptID string, requestingUserID string) (*domain.Receipt, error)

	// ListReceipts retrieves a paginated list of receipts visible to the user.
	ListReceipts(ctx context.Context, params dto.ListReceiptsParams, requestingUserID string) (*dto.ListReceiptsResponse, error)
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptWriterSvc
	ReceiptReaderSvc
}
