package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

// ToModelEstimate converts a domain estimate header to its table row form.
func ToModelEstimate(d domain.Estimate) models.Estimate {
	return models.Estimate{
		EstimateID:          d.EstimateID,
		EstimateNumber:      d.EstimateNumber,
		CustomerID:          d.CustomerID,
		BranchID:            d.BranchID,
		TotalMRP:            d.TotalMRP,
		AmountAfterDiscount: d.AmountAfterDiscount,
		AmountFinal:         d.AmountFinal,
		ReferredBy:          d.ReferredBy,
		Notes:               d.Notes,
		CreatedAtDisplay:    d.CreatedAtDisplay,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEstimate converts an estimates table row to the domain representation.
func ToDomainEstimate(m models.Estimate) domain.Estimate {
	return domain.Estimate{
		EstimateID:          m.EstimateID,
		EstimateNumber:      m.EstimateNumber,
		CustomerID:          m.CustomerID,
		BranchID:            m.BranchID,
		TotalMRP:            m.TotalMRP,
		AmountAfterDiscount: m.AmountAfterDiscount,
		AmountFinal:         m.AmountFinal,
		ReferredBy:          m.ReferredBy,
		Notes:               m.Notes,
		CreatedAtDisplay:    m.CreatedAtDisplay,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelEstimateItem(d domain.EstimateItem) models.EstimateItem {
	return models.EstimateItem{
		ItemID:             d.ItemID,
		EstimateID:         d.EstimateID,
		Position:           d.Position,
		PackageName:        d.PackageName,
		MRP:                d.MRP,
		DiscountPercentage: d.DiscountPercentage,
		B2BPrice:           d.B2BPrice,
	}
}

func ToDomainEstimateItem(m models.EstimateItem) domain.EstimateItem {
	return domain.EstimateItem{
		ItemID:             m.ItemID,
		EstimateID:         m.EstimateID,
		Position:           m.Position,
		PackageName:        m.PackageName,
		MRP:                m.MRP,
		DiscountPercentage: m.DiscountPercentage,
		B2BPrice:           m.B2BPrice,
	}
}
