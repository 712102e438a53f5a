package dto

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLabRequest defines the data for creating a lab.
type CreateLabRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateLabRequest defines the data allowed for updating a lab.
type UpdateLabRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// LabResponse is the API representation of a lab.
type LabResponse struct {
	LabID       string `json:"labID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ToLabResponse(l *domain.Lab) LabResponse {
	return LabResponse{LabID: l.LabID, Name: l.Name, Description: l.Description}
}

// ListLabsResponse wraps the list of labs.
type ListLabsResponse struct {
	Labs []LabResponse `json:"labs"`
}

func ToListLabsResponse(labs []domain.Lab) ListLabsResponse {
	out := make([]LabResponse, len(labs))
	for i := range labs {
		out[i] = ToLabResponse(&labs[i])
	}
	return ListLabsResponse{Labs: out}
}

// CreatePackageListRequest defines the data for creating a package list.
type CreatePackageListRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdatePackageListRequest defines the data allowed for updating a package list.
type UpdatePackageListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PackageListResponse is the API representation of a package list.
type PackageListResponse struct {
	PackageListID string `json:"packageListID"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

func ToPackageListResponse(l *domain.PackageList) PackageListResponse {
	return PackageListResponse{PackageListID: l.PackageListID, Name: l.Name, Description: l.Description}
}

// ListPackageListsResponse wraps the list of package lists.
type ListPackageListsResponse struct {
	PackageLists []PackageListResponse `json:"packageLists"`
}

func ToListPackageListsResponse(lists []domain.PackageList) ListPackageListsResponse {
	out := make([]PackageListResponse, len(lists))
	for i := range lists {
		out[i] = ToPackageListResponse(&lists[i])
	}
	return ListPackageListsResponse{PackageLists: out}
}

// CreatePackageRequest defines the data for creating a package within a list.
type CreatePackageRequest struct {
	Name     string          `json:"name" binding:"required"`
	MRP      decimal.Decimal `json:"mrp"`
	B2BPrice decimal.Decimal `json:"b2bPrice"`
}

// UpdatePackageRequest defines the data allowed for updating a package.
type UpdatePackageRequest struct {
	Name     *string          `json:"name"`
	MRP      *decimal.Decimal `json:"mrp"`
	B2BPrice *decimal.Decimal `json:"b2bPrice"`
}

// PackageResponse is the API representation of a package.
type PackageResponse struct {
	PackageID     string          `json:"packageID"`
	PackageListID string          `json:"packageListID"`
	Name          string          `json:"name"`
	MRP           decimal.Decimal `json:"mrp"`
	B2BPrice      decimal.Decimal `json:"b2bPrice"`
}

func ToPackageResponse(p *domain.Package) PackageResponse {
	return PackageResponse{
		PackageID:     p.PackageID,
		PackageListID: p.PackageListID,
		Name:          p.Name,
		MRP:           p.MRP,
		B2BPrice:      p.B2BPrice,
	}
}

// ListPackagesResponse wraps the list of packages.
type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

func ToListPackagesResponse(pkgs []domain.Package) ListPackagesResponse {
	out := make([]PackageResponse, len(pkgs))
	for i := range pkgs {
		out[i] = ToPackageResponse(&pkgs[i])
	}
	return ListPackagesResponse{Packages: out}
}

// GrantPackageListsRequest replaces a client's granted package lists.
type GrantPackageListsRequest struct {
	PackageListIDs []string `json:"packageListIDs" binding:"required"`
}
