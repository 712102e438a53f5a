package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	BranchID     string `db:"branch_id"`

	WalletBalance               decimal.Decimal `db:"wallet_balance"`
	AllowNegativeBalance        bool            `db:"allow_negative_balance"`
	NegativeBalanceAllowedUntil *time.Time      `db:"negative_balance_allowed_until"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       *string    `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
}
