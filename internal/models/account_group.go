package models

// AccountType is the persisted classification of an account group.
type AccountType string

// AccountGroup mirrors the account_groups table.
type AccountGroup struct {
	GroupID        string      `db:"group_id"`
	OrganizationID string      `db:"organization_id"`
	Name           string      `db:"name"`
	AccountType    AccountType `db:"account_type"`
	AuditFields
}
