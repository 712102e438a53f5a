package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
	"github.com/medibill/diagnostics_billing_app/internal/utils"
)

// userService provides user account management and authentication.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// requireAdmin loads the requesting user and checks for the ADMIN role.
func (s *userService) requireAdmin(ctx context.Context, requestingUserID string) (*domain.User, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return requester, nil
}

// CreateUser creates a new user account. Admin only.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, creatorUserID); err != nil {
		logger.Warn("Authorization failed for CreateUser", slog.String("user_id", creatorUserID))
		return nil, err
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, req.Role)
	}

	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check username availability", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is already taken", apperrors.ErrConflict, req.Username)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         role,
		BranchID:     req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if role == domain.RoleClient && len(req.PackageListIDs) > 0 {
		if err := s.catalogRepo.ReplaceUserPackageLists(ctx, user.UserID, req.PackageListIDs); err != nil {
			logger.Error("Failed to grant package lists to new user", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
			return nil, fmt.Errorf("failed to grant package lists: %w", err)
		}
		user.PackageListIDs = req.PackageListIDs
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// GetUserByID retrieves a user, with catalog grants populated for clients.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleClient {
		listIDs, err := s.catalogRepo.ListPackageListIDsForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load package list grants: %w", err)
		}
		user.PackageListIDs = listIDs
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// UpdateUser updates a user's mutable fields. Admins may update anyone;
// other users may only update themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUserID != userID {
		if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for UpdateUser", slog.String("user_id", requestingUserID), slog.String("target_user_id", userID))
			return nil, err
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		user.Name = *req.Name
		updated = true
	}
	if req.BranchID != nil {
		user.BranchID = *req.BranchID
		updated = true
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User updated", slog.String("user_id", userID))
	return user, nil
}

// GrantPackageLists replaces a client's granted rate catalogs. Admin only.
func (s *userService) GrantPackageLists(ctx context.Context, clientID string, packageListIDs []string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for GrantPackageLists", slog.String("user_id", requestingUserID))
		return err
	}

	client, err := s.userRepo.FindUserByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.Role != domain.RoleClient {
		return fmt.Errorf("%w: user %s is not a client", apperrors.ErrValidation, clientID)
	}

	for _, listID := range packageListIDs {
		if _, err := s.catalogRepo.FindPackageListByID(ctx, listID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: package list %s does not exist", apperrors.ErrValidation, listID)
			}
			return fmt.Errorf("failed to verify package list %s: %w", listID, err)
		}
	}

	if err := s.catalogRepo.ReplaceUserPackageLists(ctx, clientID, packageListIDs); err != nil {
		logger.Error("Failed to replace package list grants", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return fmt.Errorf("failed to replace package list grants: %w", err)
	}

	logger.Info("Package list grants replaced", slog.String("client_id", clientID), slog.Int("count", len(packageListIDs)))
	return nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// DeleteUser soft deletes a user. Admin only; admins cannot delete themselves.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
		logger.Warn("Authorization failed for DeleteUser", slog.String("user_id", requestingUserID))
		return err
	}
	if userID == requestingUserID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrValidation)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), requestingUserID); err != nil {
		logger.Error("Failed to mark user deleted", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}

	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser verifies a username/password pair.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
