package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

// ToModelUser converts a domain user to its table row form.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:                      d.UserID,
		Username:                    d.Username,
		PasswordHash:                d.PasswordHash,
		Name:                        d.Name,
		Role:                        string(d.Role),
		BranchID:                    d.BranchID,
		WalletBalance:               d.WalletBalance,
		AllowNegativeBalance:        d.AllowNegativeBalance,
		NegativeBalanceAllowedUntil: d.NegativeBalanceAllowedUntil,
		AuditFields:                 ToModelAuditFields(d.AuditFields),
		DeletedAt:                   d.DeletedAt,
		RefreshTokenExpiryTime:      d.RefreshTokenExpiryTime,
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = &d.RefreshTokenHash
	}
	return m
}

// ToDomainUser converts a users table row to the domain representation.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:                      m.UserID,
		Username:                    m.Username,
		PasswordHash:                m.PasswordHash,
		Name:                        m.Name,
		Role:                        domain.Role(m.Role),
		BranchID:                    m.BranchID,
		WalletBalance:               m.WalletBalance,
		AllowNegativeBalance:        m.AllowNegativeBalance,
		NegativeBalanceAllowedUntil: m.NegativeBalanceAllowedUntil,
		AuditFields:                 ToDomainAuditFields(m.AuditFields),
		DeletedAt:                   m.DeletedAt,
		RefreshTokenExpiryTime:      m.RefreshTokenExpiryTime,
	}
	if m.RefreshTokenHash != nil {
		d.RefreshTokenHash = *m.RefreshTokenHash
	}
	return d
}

// ToDomainUserSlice converts a slice of user rows.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
