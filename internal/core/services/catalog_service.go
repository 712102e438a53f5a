package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// catalogService manages labs, package lists and packages.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) requireAdmin(ctx context.Context, requestingUserID string) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// CreateLab persists a new lab. Admin only.
func (s *catalogService) CreateLab(ctx context.Context, req dto.CreateLabRequest, creatorUserID string) (*domain.Lab, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	lab := domain.Lab{
		LabID:       uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: newAudit(creatorUserID, time.Now().UTC()),
	}

	if err := s.catalogRepo.SaveLab(ctx, lab); err != nil {
		logger.Error("Failed to save lab", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save lab: %w", err)
	}

	logger.Info("Lab created", slog.String("lab_id", lab.LabID))
	return &lab, nil
}

func (s *catalogService) GetLabByID(ctx context.Context, labID string) (*domain.Lab, error) {
	return s.catalogRepo.FindLabByID(ctx, labID)
}

func (s *catalogService) ListLabs(ctx context.Context) ([]domain.Lab, error) {
	return s.catalogRepo.ListLabs(ctx)
}

// UpdateLab updates a lab's details. Admin only.
func (s *catalogService) UpdateLab(ctx context.Context, labID string, req dto.UpdateLabRequest, requestingUserID string) (*domain.Lab, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	lab, err := s.catalogRepo.FindLabByID(ctx, labID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		lab.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		lab.Description = *req.Description
		updated = true
	}
	if !updated {
		return lab, nil
	}

	lab.LastUpdatedAt = time.Now().UTC()
	lab.LastUpdatedBy = requestingUserID

	if err := s.catalogRepo.UpdateLab(ctx, *lab); err != nil {
		logger.Error("Failed to update lab", slog.String("error", err.Error()), slog.String("lab_id", labID))
		return nil, fmt.Errorf("failed to update lab: %w", err)
	}
	return lab, nil
}

// CreatePackageList persists a new package list. Admin only.
func (s *catalogService) CreatePackageList(ctx context.Context, req dto.CreatePackageListRequest, creatorUserID string) (*domain.PackageList, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	list := domain.PackageList{
		PackageListID: uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		AuditFields:   newAudit(creatorUserID, time.Now().UTC()),
	}

	if err := s.catalogRepo.SavePackageList(ctx, list); err != nil {
		logger.Error("Failed to save package list", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save package list: %w", err)
	}

	logger.Info("Package list created", slog.String("package_list_id", list.PackageListID))
	return &list, nil
}

func (s *catalogService) GetPackageListByID(ctx context.Context, packageListID string) (*domain.PackageList, error) {
	return s.catalogRepo.FindPackageListByID(ctx, packageListID)
}

func (s *catalogService) ListPackageLists(ctx context.Context) ([]domain.PackageList, error) {
	return s.catalogRepo.ListPackageLists(ctx)
}

// UpdatePackageList updates a package list's details. Admin only.
func (s *catalogService) UpdatePackageList(ctx context.Context, packageListID string, req dto.UpdatePackageListRequest, requestingUserID string) (*domain.PackageList, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	list, err := s.catalogRepo.FindPackageListByID(ctx, packageListID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		list.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		list.Description = *req.Description
		updated = true
	}
	if !updated {
		return list, nil
	}

	list.LastUpdatedAt = time.Now().UTC()
	list.LastUpdatedBy = requestingUserID

	if err := s.catalogRepo.UpdatePackageList(ctx, *list); err != nil {
		logger.Error("Failed to update package list", slog.String("error", err.Error()), slog.String("package_list_id", packageListID))
		return nil, fmt.Errorf("failed to update package list: %w", err)
	}
	return list, nil
}

// LinkLabPackageList attaches a package list to a lab. Admin only; idempotent.
func (s *catalogService) LinkLabPackageList(ctx context.Context, labID string, packageListID string, requestingUserID string) error {
	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindLabByID(ctx, labID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindPackageListByID(ctx, packageListID); err != nil {
		return err
	}
	return s.catalogRepo.LinkLabPackageList(ctx, labID, packageListID)
}

// UnlinkLabPackageList detaches a package list from a lab. Admin only.
func (s *catalogService) UnlinkLabPackageList(ctx context.Context, labID string, packageListID string, requestingUserID string) error {
	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	return s.catalogRepo.UnlinkLabPackageList(ctx, labID, packageListID)
}

// ListVisiblePackageLists returns every list for staff and granted lists for clients.
func (s *catalogService) ListVisiblePackageLists(ctx context.Context, userID string) ([]domain.PackageList, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleClient {
		return s.catalogRepo.ListPackageListsForUser(ctx, userID)
	}
	return s.catalogRepo.ListPackageLists(ctx)
}

// CreatePackage persists a new package within a list. Admin only.
func (s *catalogService) CreatePackage(ctx context.Context, packageListID string, req dto.CreatePackageRequest, creatorUserID string) (*domain.Package, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.FindPackageListByID(ctx, packageListID); err != nil {
		return nil, err
	}
	if req.MRP.IsNegative() || req.B2BPrice.IsNegative() {
		return nil, fmt.Errorf("%w: package prices must not be negative", apperrors.ErrValidation)
	}

	pkg := domain.Package{
		PackageID:     uuid.NewString(),
		PackageListID: packageListID,
		Name:          req.Name,
		MRP:           req.MRP,
		B2BPrice:      req.B2BPrice,
		AuditFields:   newAudit(creatorUserID, time.Now().UTC()),
	}

	if err := s.catalogRepo.SavePackage(ctx, pkg); err != nil {
		logger.Error("Failed to save package", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save package: %w", err)
	}

	logger.Info("Package created", slog.String("package_id", pkg.PackageID), slog.String("package_list_id", packageListID))
	return &pkg, nil
}

func (s *catalogService) ListPackages(ctx context.Context, packageListID string) ([]domain.Package, error) {
	return s.catalogRepo.ListPackagesByListID(ctx, packageListID)
}

// UpdatePackage updates a package's details. Admin only.
func (s *catalogService) UpdatePackage(ctx context.Context, packageID string, req dto.UpdatePackageRequest, requestingUserID string) (*domain.Package, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	pkg, err := s.catalogRepo.FindPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		pkg.Name = *req.Name
		updated = true
	}
	if req.MRP != nil {
		if req.MRP.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: package MRP must not be negative", apperrors.ErrValidation)
		}
		pkg.MRP = *req.MRP
		updated = true
	}
	if req.B2BPrice != nil {
		if req.B2BPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: package B2B price must not be negative", apperrors.ErrValidation)
		}
		pkg.B2BPrice = *req.B2BPrice
		updated = true
	}
	if !updated {
		return pkg, nil
	}

	pkg.LastUpdatedAt = time.Now().UTC()
	pkg.LastUpdatedBy = requestingUserID

	if err := s.catalogRepo.UpdatePackage(ctx, *pkg); err != nil {
		logger.Error("Failed to update package", slog.String("error", err.Error()), slog.String("package_id", packageID))
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}
