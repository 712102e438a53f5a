package models

import "github.com/shopspring/decimal"

// Lab is the labs table row.
type Lab struct {
	LabID       string `db:"lab_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// PackageList is the package_lists table row.
type PackageList struct {
	PackageListID string `db:"package_list_id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	AuditFields
}

// Package is the packages table row.
type Package struct {
	PackageID     string          `db:"package_id"`
	PackageListID string          `db:"package_list_id"`
	Name          string          `db:"name"`
	MRP           decimal.Decimal `db:"mrp"`
	B2BPrice      decimal.Decimal `db:"b2b_price"`
	AuditFields
}
