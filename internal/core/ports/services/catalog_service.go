package services

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

// LabSvc defines operations for lab data
type LabSvc interface {
	CreateLab(ctx context.Context, req dto.CreateLabRequest, creatorUserID string) (*domain.Lab, error)
	GetLabByID(ctx context.Context, labID string) (*domain.Lab, error)
	ListLabs(ctx context.Context) ([]domain.Lab, error)
	UpdateLab(ctx context.Context, labID string, req dto.UpdateLabRequest, requestingUserID string) (*domain.Lab, error)
}

// PackageListSvc defines operations for package lists and their lab links
type PackageListSvc interface {
	CreatePackageList(ctx context.Context, req dto.CreatePackageListRequest, creatorUserID string) (*domain.PackageList, error)
	GetPackageListByID(ctx context.Context, packageListID string) (*domain.PackageList, error)
	ListPackageLists(ctx context.Context) ([]domain.PackageList, error)
	UpdatePackageList(ctx context.Context, packageListID string, req dto.UpdatePackageListRequest, requestingUserID string) (*domain.PackageList, error)

	LinkLabPackageList(ctx context.Context, labID string, packageListID string, requestingUserID string) error
	UnlinkLabPackageList(ctx context.Context, labID string, packageListID string, requestingUserID string) error

	// ListVisiblePackageLists returns the lists a user may bill against:
	// every list for staff, granted lists for clients.
	ListVisiblePackageLists(ctx context.Context, userID string) ([]domain.PackageList, error)
}

// PackageSvc defines operations for individual packages
type PackageSvc interface {
	CreatePackage(ctx context.Context, packageListID string, req dto.CreatePackageRequest, creatorUserID string) (*domain.Package, error)
	ListPackages(ctx context.Context, packageListID string) ([]domain.Package, error)
	UpdatePackage(ctx context.Context, packageID string, req dto.UpdatePackageRequest, requestingUserID string) (*domain.Package, error)
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	LabSvc
	PackageListSvc
	PackageSvc
}
