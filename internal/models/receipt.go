package models

import "github.com/shopspring/decimal"

// Receipt is the receipts table row.
type Receipt struct {
	ReceiptID     string `db:"receipt_id"`
	ReceiptNumber int64  `db:"receipt_number"`
	CustomerID    string `db:"customer_id"`
	BranchID      string `db:"branch_id"`

	TotalMRP            decimal.Decimal `db:"total_mrp"`
	AmountAfterDiscount decimal.Decimal `db:"amount_after_discount"`
	AmountFinal         decimal.Decimal `db:"amount_final"`
	AmountReceived      decimal.Decimal `db:"amount_received"`
	AmountDue           decimal.Decimal `db:"amount_due"`

	PaymentMethod    string `db:"payment_method"`
	ReferredBy       string `db:"referred_by"`
	Notes            string `db:"notes"`
	CreatedAtDisplay string `db:"created_at_display"`

	AuditFields
}

// ReceiptItem is the receipt_items table row.
type ReceiptItem struct {
	ItemID             string          `db:"item_id"`
	ReceiptID          string          `db:"receipt_id"`
	Position           int             `db:"position"`
	PackageName        string          `db:"package_name"`
	MRP                decimal.Decimal `db:"mrp"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
	B2BPrice           decimal.Decimal `db:"b2b_price"`
}
