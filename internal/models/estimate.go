package models

import "github.com/shopspring/decimal"

// Estimate is the estimates table row.
type Estimate struct {
	EstimateID     string `db:"estimate_id"`
	EstimateNumber int64  `db:"estimate_number"`
	CustomerID     string `db:"customer_id"`
	BranchID       string `db:"branch_id"`

	TotalMRP            decimal.Decimal `db:"total_mrp"`
	AmountAfterDiscount decimal.Decimal `db:"amount_after_discount"`
	AmountFinal         decimal.Decimal `db:"amount_final"`

	ReferredBy       string `db:"referred_by"`
	Notes            string `db:"notes"`
	CreatedAtDisplay string `db:"created_at_display"`

	AuditFields
}

// EstimateItem is the estimate_items table row.
type EstimateItem struct {
	ItemID             string          `db:"item_id"`
	EstimateID         string          `db:"estimate_id"`
	Position           int             `db:"position"`
	PackageName        string          `db:"package_name"`
	MRP                decimal.Decimal `db:"mrp"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
	B2BPrice           decimal.Decimal `db:"b2b_price"`
}
