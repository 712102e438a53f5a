package domain

import "github.com/shopspring/decimal"

// Estimate is a quote: the same document shape as a receipt minus payment
// fields. Estimates never move money.
type Estimate struct {
	EstimateID     string `json:"estimateID"`
	EstimateNumber int64  `json:"estimateNumber"`
	CustomerID     string `json:"customerID"`
	BranchID       string `json:"branchID"`

	TotalMRP            decimal.Decimal `json:"totalMRP"`
	AmountAfterDiscount decimal.Decimal `json:"amountAfterDiscount"`
	AmountFinal         decimal.Decimal `json:"amountFinal"`

	ReferredBy string `json:"referredBy"`
	Notes      string `json:"notes"`

	CreatedAtDisplay string `json:"createdAtDisplay"`

	AuditFields
	Items []EstimateItem `json:"items,omitempty"`
}

// EstimateItem is one quoted package line. Position preserves submission order.
type EstimateItem struct {
	ItemID             string          `json:"itemID"`
	EstimateID         string          `json:"estimateID"`
	Position           int             `json:"position"`
	PackageName        string          `json:"packageName"`
	MRP                decimal.Decimal `json:"mrp"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	B2BPrice           decimal.Decimal `json:"b2bPrice"`
}
