package domain

// Branch is a physical collection centre documents are billed against.
// Timezone is an IANA zone name used to render branch-local display
// timestamps on receipts and estimates.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
	AuditFields
}
