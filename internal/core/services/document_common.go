package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

var errNoItems = errors.New("document must have at least one item")

// displayTimestampLayout renders branch-local creation times on printed
// documents, e.g. "05 Mar 2026, 04:35 PM".
const displayTimestampLayout = "02 Jan 2006, 03:04 PM"

var hundred = decimal.NewFromInt(100)

// validateDocumentItems checks submitted line items for both receipts and
// estimates.
func validateDocumentItems(items []dto.DocumentItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, errNoItems)
	}
	for i, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d has no name", apperrors.ErrValidation, i+1)
		}
		if item.MRP.IsNegative() {
			return fmt.Errorf("%w: item %q has a negative MRP", apperrors.ErrValidation, item.Name)
		}
		if item.Discount.IsNegative() || item.Discount.GreaterThan(hundred) {
			return fmt.Errorf("%w: item %q discount must be between 0 and 100", apperrors.ErrValidation, item.Name)
		}
		if item.B2BPrice != nil && item.B2BPrice.IsNegative() {
			return fmt.Errorf("%w: item %q has a negative B2B price", apperrors.ErrValidation, item.Name)
		}
	}
	return nil
}

// sumB2BPrices totals the B2B prices across items. This is the amount debited
// from a client wallet when a client bills a receipt.
func sumB2BPrices(items []dto.DocumentItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.B2BPrice != nil {
			total = total.Add(*item.B2BPrice)
		}
	}
	return total
}

// itemB2BPrice returns the item's B2B price, defaulting to zero.
func itemB2BPrice(item dto.DocumentItemRequest) decimal.Decimal {
	if item.B2BPrice != nil {
		return *item.B2BPrice
	}
	return decimal.Zero
}

// formatDisplayTimestamp renders now in the given IANA zone, falling back to
// the default zone and finally UTC when a zone cannot be loaded.
func formatDisplayTimestamp(now time.Time, timezone string, defaultTimezone string) string {
	for _, tz := range []string{timezone, defaultTimezone} {
		if tz == "" {
			continue
		}
		if loc, err := time.LoadLocation(tz); err == nil {
			return now.In(loc).Format(displayTimestampLayout)
		}
	}
	return now.UTC().Format(displayTimestampLayout)
}
