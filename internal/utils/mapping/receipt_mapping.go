package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

// ToModelReceipt converts a domain receipt header to its table row form.
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:           d.ReceiptID,
		ReceiptNumber:       d.ReceiptNumber,
		CustomerID:          d.CustomerID,
		BranchID:            d.BranchID,
		TotalMRP:            d.TotalMRP,
		AmountAfterDiscount: d.AmountAfterDiscount,
		AmountFinal:         d.AmountFinal,
		AmountReceived:      d.AmountReceived,
		AmountDue:           d.AmountDue,
		PaymentMethod:       d.PaymentMethod,
		ReferredBy:          d.ReferredBy,
		Notes:               d.Notes,
		CreatedAtDisplay:    d.CreatedAtDisplay,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a receipts table row to the domain representation.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:           m.ReceiptID,
		ReceiptNumber:       m.ReceiptNumber,
		CustomerID:          m.CustomerID,
		BranchID:            m.BranchID,
		TotalMRP:            m.TotalMRP,
		AmountAfterDiscount: m.AmountAfterDiscount,
		AmountFinal:         m.AmountFinal,
		AmountReceived:      m.AmountReceived,
		AmountDue:           m.AmountDue,
		PaymentMethod:       m.PaymentMethod,
		ReferredBy:          m.ReferredBy,
		Notes:               m.Notes,
		CreatedAtDisplay:    m.CreatedAtDisplay,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelReceiptItem(d domain.ReceiptItem) models.ReceiptItem {
	return models.ReceiptItem{
		ItemID:             d.ItemID,
		ReceiptID:          d.ReceiptID,
		Position:           d.Position,
		PackageName:        d.PackageName,
		MRP:                d.MRP,
		DiscountPercentage: d.DiscountPercentage,
		B2BPrice:           d.B2BPrice,
	}
}

func ToDomainReceiptItem(m models.ReceiptItem) domain.ReceiptItem {
	return domain.ReceiptItem{
		ItemID:             m.ItemID,
		ReceiptID:          m.ReceiptID,
		Position:           m.Position,
		PackageName:        m.PackageName,
		MRP:                m.MRP,
		DiscountPercentage: m.DiscountPercentage,
		B2BPrice:           m.B2BPrice,
	}
}
