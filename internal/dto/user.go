package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data for creating a user (admin action).
type CreateUserRequest struct {
	Username       string   `json:"username" binding:"required"`
	Password       string   `json:"password" binding:"required,min=8"`
	Name           string   `json:"name" binding:"required"`
	Role           string   `json:"role" binding:"required,oneof=ADMIN GENERAL_EMPLOYEE CLIENT"`
	BranchID       string   `json:"branchID" binding:"required"`
	PackageListIDs []string `json:"packageListIDs,omitempty"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	BranchID *string `json:"branchID"`
	Password *string `json:"password"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse is the API representation of a user, minus credential fields.
type UserResponse struct {
	UserID                      string          `json:"userID"`
	Username                    string          `json:"username"`
	Name                        string          `json:"name"`
	Role                        string          `json:"role"`
	BranchID                    string          `json:"branchID"`
	WalletBalance               decimal.Decimal `json:"walletBalance"`
	AllowNegativeBalance        bool            `json:"allowNegativeBalance"`
	NegativeBalanceAllowedUntil *time.Time      `json:"negativeBalanceAllowedUntil,omitempty"`
	PackageListIDs              []string        `json:"packageListIDs,omitempty"`
	CreatedAt                   time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:                      u.UserID,
		Username:                    u.Username,
		Name:                        u.Name,
		Role:                        string(u.Role),
		BranchID:                    u.BranchID,
		WalletBalance:               u.WalletBalance,
		AllowNegativeBalance:        u.AllowNegativeBalance,
		NegativeBalanceAllowedUntil: u.NegativeBalanceAllowedUntil,
		PackageListIDs:              u.PackageListIDs,
		CreatedAt:                   u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain users.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}
