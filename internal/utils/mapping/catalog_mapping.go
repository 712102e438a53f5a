package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

func ToModelLab(d domain.Lab) models.Lab {
	return models.Lab{
		LabID:       d.LabID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLab(m models.Lab) domain.Lab {
	return domain.Lab{
		LabID:       m.LabID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelPackageList(d domain.PackageList) models.PackageList {
	return models.PackageList{
		PackageListID: d.PackageListID,
		Name:          d.Name,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPackageList(m models.PackageList) domain.PackageList {
	return domain.PackageList{
		PackageListID: m.PackageListID,
		Name:          m.Name,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelPackage(d domain.Package) models.Package {
	return models.Package{
		PackageID:     d.PackageID,
		PackageListID: d.PackageListID,
		Name:          d.Name,
		MRP:           d.MRP,
		B2BPrice:      d.B2BPrice,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPackage(m models.Package) domain.Package {
	return domain.Package{
		PackageID:     m.PackageID,
		PackageListID: m.PackageListID,
		Name:          m.Name,
		MRP:           m.MRP,
		B2BPrice:      m.B2BPrice,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
