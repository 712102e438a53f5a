package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

func ToModelWalletTransaction(d domain.WalletTransaction) models.WalletTransaction {
	return models.WalletTransaction{
		TransactionID:  d.TransactionID,
		UserID:         d.UserID,
		Type:           string(d.Type),
		AmountDeducted: d.AmountDeducted,
		Notes:          d.Notes,
		ReceiptID:      d.ReceiptID,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

func ToDomainWalletTransaction(m models.WalletTransaction) domain.WalletTransaction {
	return domain.WalletTransaction{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		Type:           domain.WalletTransactionType(m.Type),
		AmountDeducted: m.AmountDeducted,
		Notes:          m.Notes,
		ReceiptID:      m.ReceiptID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

func ToDomainWalletTransactionSlice(ms []models.WalletTransaction) []domain.WalletTransaction {
	ds := make([]domain.WalletTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWalletTransaction(m)
	}
	return ds
}
