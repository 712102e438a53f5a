package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one submitted line item. b2b_price is optional and
// defaults to zero for retail billing.
type DocumentItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	MRP      decimal.Decimal  `json:"mrp"`
	B2BPrice *decimal.Decimal `json:"b2b_price,omitempty"`
	Discount decimal.Decimal  `json:"discount"`
}

// CreateReceiptRequest is the POST /receipts payload. Branch and actor
// identity are taken from the authenticated session, never from the payload.
type CreateReceiptRequest struct {
	CustomerData  CustomerData          `json:"customer_data" binding:"required"`
	LabID         string                `json:"lab_id"`
	PackageListID string                `json:"package_list_id"`
	Items         []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`

	TotalMRP            decimal.Decimal `json:"total_mrp"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	AmountFinal         decimal.Decimal `json:"amount_final"`
	AmountReceived      decimal.Decimal `json:"amount_received"`
	AmountDue           decimal.Decimal `json:"amount_due"`

	PaymentMethod string `json:"payment_method"`
	ReferredBy    string `json:"referred_by"`
	Notes         string `json:"notes"`
}

// ReceiptItemResponse is the API representation of a receipt line.
type ReceiptItemResponse struct {
	ItemID             string          `json:"itemID"`
	Position           int             `json:"position"`
	PackageName        string          `json:"packageName"`
	MRP                decimal.Decimal `json:"mrp"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	B2BPrice           decimal.Decimal `json:"b2bPrice"`
}

// ReceiptResponse is the API representation of a receipt.
type ReceiptResponse struct {
	ReceiptID           string                `json:"receiptID"`
	ReceiptNumber       int64                 `json:"receiptNumber"`
	CustomerID          string                `json:"customerID"`
	BranchID            string                `json:"branchID"`
	TotalMRP            decimal.Decimal       `json:"totalMRP"`
	AmountAfterDiscount decimal.Decimal       `json:"amountAfterDiscount"`
	AmountFinal         decimal.Decimal       `json:"amountFinal"`
	AmountReceived      decimal.Decimal       `json:"amountReceived"`
	AmountDue           decimal.Decimal       `json:"amountDue"`
	PaymentMethod       string                `json:"paymentMethod"`
	ReferredBy          string                `json:"referredBy"`
	Notes               string                `json:"notes"`
	CreatedAtDisplay    string                `json:"createdAtDisplay"`
	CreatedAt           time.Time             `json:"createdAt"`
	CreatedBy           string                `json:"createdBy"`
	Items               []ReceiptItemResponse `json:"items,omitempty"`
}

// ToReceiptResponse converts a domain receipt to its API representation.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ReceiptID:           r.ReceiptID,
		ReceiptNumber:       r.ReceiptNumber,
		CustomerID:          r.CustomerID,
		BranchID:            r.BranchID,
		TotalMRP:            r.TotalMRP,
		AmountAfterDiscount: r.AmountAfterDiscount,
		AmountFinal:         r.AmountFinal,
		AmountReceived:      r.AmountReceived,
		AmountDue:           r.AmountDue,
		PaymentMethod:       r.PaymentMethod,
		ReferredBy:          r.ReferredBy,
		Notes:               r.Notes,
		CreatedAtDisplay:    r.CreatedAtDisplay,
		CreatedAt:           r.CreatedAt,
		CreatedBy:           r.CreatedBy,
	}
	if len(r.Items) > 0 {
		resp.Items = make([]ReceiptItemResponse, len(r.Items))
		for i, item := range r.Items {
			resp.Items[i] = ReceiptItemResponse{
				ItemID:             item.ItemID,
				Position:           item.Position,
				PackageName:        item.PackageName,
				MRP:                item.MRP,
				DiscountPercentage: item.DiscountPercentage,
				B2BPrice:           item.B2BPrice,
			}
		}
	}
	return resp
}

// CreateReceiptResponse is the 201 body for POST /receipts. UpdatedUser is
// non-nil only when a wallet debit was applied to the acting client.
type CreateReceiptResponse struct {
	NewReceipt  ReceiptResponse `json:"newReceipt"`
	UpdatedUser *UserResponse   `json:"updatedUser"`
}

// ListReceiptsParams defines query parameters for listing receipts.
type ListReceiptsParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"next_token"`
	BranchID  string     `form:"branch_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListReceiptsResponse wraps a page of receipts.
type ListReceiptsResponse struct {
	Receipts  []ReceiptResponse `json:"receipts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
