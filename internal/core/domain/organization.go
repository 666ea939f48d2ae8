package domain

// Organization represents an isolated tenant owning account groups, chart-of-account
// entries, organization accounts and ledger transactions.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (e.g., UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
