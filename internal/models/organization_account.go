package models

import "github.com/shopspring/decimal"

// OrganizationAccount mirrors the organization_accounts table.
type OrganizationAccount struct {
	OrgAccountID   string          `db:"org_account_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	Kind           string          `db:"kind"`
	Balance        decimal.Decimal `db:"balance"`
	AllowOverdraft bool            `db:"allow_overdraft"`
	AuditFields
}
