package dto

import "github.com/medibill/diagnostics_billing_app/internal/core/domain"

// CreateBranchRequest defines the data for creating a branch.
type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

// UpdateBranchRequest defines the data allowed for updating a branch.
type UpdateBranchRequest struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

// BranchResponse is the API representation of a branch.
type BranchResponse struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

// ToBranchResponse converts a domain branch.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID: b.BranchID,
		Name:     b.Name,
		Code:     b.Code,
		Address:  b.Address,
		Timezone: b.Timezone,
	}
}

// ListBranchesResponse wraps the list of branches.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// ToListBranchesResponse converts a slice of domain branches.
func ToListBranchesResponse(branches []domain.Branch) ListBranchesResponse {
	out := make([]BranchResponse, len(branches))
	for i := range branches {
		out[i] = ToBranchResponse(&branches[i])
	}
	return ListBranchesResponse{Branches: out}
}
