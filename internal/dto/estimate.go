package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEstimateRequest is the POST /estimates payload: the receipt payload
// without payment fields.
type CreateEstimateRequest struct {
	CustomerData  CustomerData          `json:"customer_data" binding:"required"`
	LabID         string                `json:"lab_id"`
	PackageListID string                `json:"package_list_id"`
	Items         []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`

	TotalMRP            decimal.Decimal `json:"total_mrp"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	AmountFinal         decimal.Decimal `json:"amount_final"`

	ReferredBy string `json:"referred_by"`
	Notes      string `json:"notes"`
}

// EstimateItemResponse is the API representation of an estimate line.
type EstimateItemResponse struct {
	ItemID             string          `json:"itemID"`
	Position           int             `json:"position"`
	PackageName        string          `json:"packageName"`
	MRP                decimal.Decimal `json:"mrp"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	B2BPrice           decimal.Decimal `json:"b2bPrice"`
}

// EstimateResponse is the API representation of an estimate.
type EstimateResponse struct {
	EstimateID          string                 `json:"estimateID"`
	EstimateNumber      int64                  `json:"estimateNumber"`
	CustomerID          string                 `json:"customerID"`
	BranchID            string                 `json:"branchID"`
	TotalMRP            decimal.Decimal        `json:"totalMRP"`
	AmountAfterDiscount decimal.Decimal        `json:"amountAfterDiscount"`
	AmountFinal         decimal.Decimal        `json:"amountFinal"`
	ReferredBy          string                 `json:"referredBy"`
	Notes               string                 `json:"notes"`
	CreatedAtDisplay    string                 `json:"createdAtDisplay"`
	CreatedAt           time.Time              `json:"createdAt"`
	CreatedBy           string                 `json:"createdBy"`
	Items               []EstimateItemResponse `json:"items,omitempty"`
}

// ToEstimateResponse converts a domain estimate to its API representation.
func ToEstimateResponse(e *domain.Estimate) EstimateResponse {
	resp := EstimateResponse{
		EstimateID:          e.EstimateID,
		EstimateNumber:      e.EstimateNumber,
		CustomerID:          e.CustomerID,
		BranchID:            e.BranchID,
		TotalMRP:            e.TotalMRP,
		AmountAfterDiscount: e.AmountAfterDiscount,
		AmountFinal:         e.AmountFinal,
		ReferredBy:          e.ReferredBy,
		Notes:               e.Notes,
		CreatedAtDisplay:    e.CreatedAtDisplay,
		CreatedAt:           e.CreatedAt,
		CreatedBy:           e.CreatedBy,
	}
	if len(e.Items) > 0 {
		resp.Items = make([]EstimateItemResponse, len(e.Items))
		for i, item := range e.Items {
			resp.Items[i] = EstimateItemResponse{
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

// ListEstimatesParams defines query parameters for listing estimates.
type ListEstimatesParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"next_token"`
	BranchID  string     `form:"branch_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListEstimatesResponse wraps a page of estimates.
type ListEstimatesResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
	NextToken *string            `json:"nextToken,omitempty"`
}
