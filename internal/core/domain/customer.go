package domain

import "time"

// Customer is the person a receipt or estimate is billed to.
// At most one live customer may own a given mobile number; the constraint is
// enforced by the storage layer, not just the pre-insert lookup.
type Customer struct {
	CustomerID string     `json:"customerID"`
	Prefix     string     `json:"prefix"`
	Name       string     `json:"name"`
	Mobile     *string    `json:"mobile,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	Age        *int       `json:"age,omitempty"`
	Gender     string     `json:"gender"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CustomerInput is the customer payload submitted with a document.
// When CustomerID is set the existing customer's mutable fields are
// refreshed; otherwise a customer is looked up by mobile or created.
type CustomerInput struct {
	CustomerID *string    `json:"customerID,omitempty"`
	Prefix     string     `json:"prefix"`
	Name       string     `json:"name"`
	Mobile     *string    `json:"mobile,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	Age        *int       `json:"age,omitempty"`
	Gender     string     `json:"gender"`
}
