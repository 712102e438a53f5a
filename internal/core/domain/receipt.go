package domain

import "github.com/shopspring/decimal"

// Receipt is a paid billing document. Monetary totals are denormalized: the
// stored AmountFinal is the authoritative billed amount even if recomputation
// from items would differ due to rounding.
type Receipt struct {
	ReceiptID     string `json:"receiptID"`
	ReceiptNumber int64  `json:"receiptNumber"`
	CustomerID    string `json:"customerID"`
	BranchID      string `json:"branchID"`

	TotalMRP            decimal.Decimal `json:"totalMRP"`
	AmountAfterDiscount decimal.Decimal `json:"amountAfterDiscount"`
	AmountFinal         decimal.Decimal `json:"amountFinal"`
	AmountReceived      decimal.Decimal `json:"amountReceived"`
	AmountDue           decimal.Decimal `json:"amountDue"`

	PaymentMethod string `json:"paymentMethod"`
	ReferredBy    string `json:"referredBy"`
	Notes         string `json:"notes"`

	// CreatedAtDisplay is the branch-local timestamp rendered at creation
	// time, stored verbatim for display.
	CreatedAtDisplay string `json:"createdAtDisplay"`

	AuditFields
	Items []ReceiptItem `json:"items,omitempty"`
}

// ReceiptItem is one billed package line. Position preserves submission order.
// B2BPrice is recorded for wallet accounting on client-billed receipts.
type ReceiptItem struct {
	ItemID             string          `json:"itemID"`
	ReceiptID          string          `json:"receiptID"`
	Position           int             `json:"position"`
	PackageName        string          `json:"packageName"`
	MRP                decimal.Decimal `json:"mrp"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	B2BPrice           decimal.Decimal `json:"b2bPrice"`
}
