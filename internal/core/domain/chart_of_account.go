package domain

// AccountStatus indicates whether a chart-of-account entry accepts new postings.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// ChartOfAccount is a named, coded ledger account scoped to an organization.
// Code is unique per organization among ACTIVE entries. The optional links are
// classification tags for reporting, not ownership.
type ChartOfAccount struct {
	AccountID         string        `json:"accountID"`      // Primary Key (e.g., UUID)
	OrganizationID    string        `json:"organizationID"` // FK -> organizations.organization_id
	Code              string        `json:"code"`           // Organization-scoped unique code
	Name              string        `json:"name"`
	AccountGroupID    string        `json:"accountGroupID"` // FK -> account_groups.group_id
	IsSystemGenerated bool          `json:"isSystemGenerated"`
	Status            AccountStatus `json:"status"`
	OrgAccountID      *string       `json:"orgAccountID,omitempty"` // Optional FK -> organization_accounts
	ProjectID         *string       `json:"projectID,omitempty"`
	UnitID            *string       `json:"unitID,omitempty"`
	CustomerID        *string       `json:"customerID,omitempty"`
	VendorID          *string       `json:"vendorID,omitempty"`
	AuditFields
}

// IsActive reports whether the entry accepts new postings.
func (a ChartOfAccount) IsActive() bool {
	return a.Status == StatusActive
}
