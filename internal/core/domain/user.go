package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role determines what a user may do in the system.
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleGeneralEmployee Role = "GENERAL_EMPLOYEE"
	RoleClient          Role = "CLIENT"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleGeneralEmployee, RoleClient:
		return true
	}
	return false
}

// User represents a staff member or a B2B client of the system.
// Wallet fields are only meaningful for CLIENT-role users; they stay at their
// zero values for other roles.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	BranchID     string `json:"branchID"`

	WalletBalance               decimal.Decimal `json:"walletBalance"`
	AllowNegativeBalance        bool            `json:"allowNegativeBalance"`
	NegativeBalanceAllowedUntil *time.Time      `json:"negativeBalanceAllowedUntil,omitempty"`

	// PackageListIDs are the rate catalogs this client may bill against.
	PackageListIDs []string `json:"packageListIDs,omitempty"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// CanGoNegative reports whether a wallet deduction may push this user's
// balance below zero at the given instant.
func (u *User) CanGoNegative(now time.Time) bool {
	if !u.AllowNegativeBalance {
		return false
	}
	if u.NegativeBalanceAllowedUntil != nil && !now.Before(*u.NegativeBalanceAllowedUntil) {
		return false
	}
	return true
}
