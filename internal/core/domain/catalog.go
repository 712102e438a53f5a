package domain

import "github.com/shopspring/decimal"

// Lab is a diagnostics laboratory whose rate catalogs can be billed against.
// A lab exposes zero or more package lists (many-to-many).
type Lab struct {
	LabID       string `json:"labID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// PackageList is a rate catalog. Clients are granted access to specific
// package lists, which controls what they may bill against.
type PackageList struct {
	PackageListID string `json:"packageListID"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	AuditFields
}

// Package is a single lab test package within exactly one package list.
// It carries both a retail MRP and the negotiated B2B price.
type Package struct {
	PackageID     string          `json:"packageID"`
	PackageListID string          `json:"packageListID"`
	Name          string          `json:"name"`
	MRP           decimal.Decimal `json:"mrp"`
	B2BPrice      decimal.Decimal `json:"b2bPrice"`
	AuditFields
}
