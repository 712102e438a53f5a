package dto

import (
	"time"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// CustomerData is the customer payload submitted with a receipt or estimate.
// Field names follow the wire format used by the billing frontend.
type CustomerData struct {
	CustomerID *string    `json:"customer_id,omitempty"`
	Prefix     string     `json:"prefix"`
	Name       string     `json:"name"`
	Mobile     *string    `json:"mobile,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	Age        *int       `json:"age,omitempty"`
	Gender     string     `json:"gender,omitempty"`
}

// ToDomainInput converts the wire payload to the domain input type.
func (c CustomerData) ToDomainInput() domain.CustomerInput {
	return domain.CustomerInput{
		CustomerID: c.CustomerID,
		Prefix:     c.Prefix,
		Name:       c.Name,
		Mobile:     c.Mobile,
		DOB:        c.DOB,
		Age:        c.Age,
		Gender:     c.Gender,
	}
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers differentiate omitted fields from zero values.
type UpdateCustomerRequest struct {
	Prefix *string    `json:"prefix"`
	Name   *string    `json:"name"`
	Mobile *string    `json:"mobile"`
	DOB    *time.Time `json:"dob"`
	Age    *int       `json:"age"`
	Gender *string    `json:"gender"`
}

// SearchCustomersParams defines query parameters for customer search.
type SearchCustomersParams struct {
	Query  string `form:"q" binding:"required"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	CustomerID string     `json:"customerID"`
	Prefix     string     `json:"prefix"`
	Name       string     `json:"name"`
	Mobile     *string    `json:"mobile,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	Age        *int       `json:"age,omitempty"`
	Gender     string     `json:"gender"`
	CreatedAt  time.Time  `json:"createdAt"`
	CreatedBy  string     `json:"createdBy"`
}

// ToCustomerResponse converts a domain customer to its API representation.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Prefix:     c.Prefix,
		Name:       c.Name,
		Mobile:     c.Mobile,
		DOB:        c.DOB,
		Age:        c.Age,
		Gender:     c.Gender,
		CreatedAt:  c.CreatedAt,
		CreatedBy:  c.CreatedBy,
	}
}

// ListCustomersResponse wraps customer search results.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain customers.
func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: out}
}
