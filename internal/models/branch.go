package models

// Branch is the branches table row.
type Branch struct {
	BranchID string `db:"branch_id"`
	Name     string `db:"name"`
	Code     string `db:"code"`
	Address  string `db:"address"`
	Timezone string `db:"timezone"`
	AuditFields
}
