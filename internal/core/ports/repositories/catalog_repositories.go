package repositories

import (
	"context"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// LabRepository defines operations for lab data.
type LabRepository interface {
	SaveLab(ctx context.Context, lab domain.Lab) error
	FindLabByID(ctx context.Context, labID string) (*domain.Lab, error)
	ListLabs(ctx context.Context) ([]domain.Lab, error)
	UpdateLab(ctx context.Context, lab domain.Lab) error
}

// PackageListRepository defines operations for package list data, including
// the lab and user link tables.
type PackageListRepository interface {
	SavePackageList(ctx context.Context, list domain.PackageList) error
	FindPackageListByID(ctx context.Context, packageListID string) (*domain.PackageList, error)
	ListPackageLists(ctx context.Context) ([]domain.PackageList, error)
	ListPackageListsByLabID(ctx context.Context, labID string) ([]domain.PackageList, error)
	UpdatePackageList(ctx context.Context, list domain.PackageList) error

	// LinkLabPackageList attaches a package list to a lab; idempotent.
	LinkLabPackageList(ctx context.Context, labID string, packageListID string) error
	UnlinkLabPackageList(ctx context.Context, labID string, packageListID string) error

	// ReplaceUserPackageLists replaces the set of lists granted to a user.
	ReplaceUserPackageLists(ctx context.Context, userID string, packageListIDs []string) error
	ListPackageListIDsForUser(ctx context.Context, userID string) ([]string, error)
	ListPackageListsForUser(ctx context.Context, userID string) ([]domain.PackageList, error)
}

// PackageRepository defines operations for package data.
type PackageRepository interface {
	SavePackage(ctx context.Context, pkg domain.Package) error
	FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error)
	ListPackagesByListID(ctx context.Context, packageListID string) ([]domain.Package, error)
	UpdatePackage(ctx context.Context, pkg domain.Package) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces.
type CatalogRepositoryFacade interface {
	LabRepository
	PackageListRepository
	PackageRepository
}
