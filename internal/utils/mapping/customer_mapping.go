package mapping

import (
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	"github.com/medibill/diagnostics_billing_app/internal/models"
)

// ToModelCustomer converts a domain customer to its table row form.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Prefix:      d.Prefix,
		Name:        d.Name,
		Mobile:      d.Mobile,
		DOB:         d.DOB,
		Age:         d.Age,
		Gender:      d.Gender,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainCustomer converts a customers table row to the domain representation.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Prefix:      m.Prefix,
		Name:        m.Name,
		Mobile:      m.Mobile,
		DOB:         m.DOB,
		Age:         m.Age,
		Gender:      m.Gender,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainCustomerSlice converts a slice of customer rows.
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
