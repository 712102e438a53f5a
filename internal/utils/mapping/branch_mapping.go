package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:    d.BranchID,
		Name:        d.Name,
		Code:        d.Code,
		Address:     d.Address,
		Timezone:    d.Timezone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		Code:        m.Code,
		Address:     m.Address,
		Timezone:    m.Timezone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
