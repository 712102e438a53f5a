package models

import "time"

// Customer is the customers table row.
type Customer struct {
	CustomerID string     `db:"customer_id"`
	Prefix     string     `db:"prefix"`
	Name       string     `db:"name"`
	Mobile     *string    `db:"mobile"`
	DOB        *time.Time `db:"dob"`
	Age        *int       `db:"age"`
	Gender     string     `db:"gender"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
