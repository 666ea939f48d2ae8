package models

// ChartOfAccount mirrors the chart_of_accounts table.
// The optional link columns are nullable; pointers map to NULL.
type ChartOfAccount struct {
	AccountID         string  `db:"account_id"`
	OrganizationID    string  `db:"organization_id"`
	Code              string  `db:"code"`
	Name              string  `db:"name"`
	AccountGroupID    string  `db:"account_group_id"`
	IsSystemGenerated bool    `db:"is_system_generated"`
	Status            string  `db:"status"`
	OrgAccountID      *string `db:"org_account_id"`
	ProjectID         *string `db:"project_id"`
	UnitID            *string `db:"unit_id"`
	CustomerID        *string `db:"customer_id"`
	VendorID          *string `db:"vendor_id"`
	AuditFields
}
