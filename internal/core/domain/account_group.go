package domain

import "fmt"

// AccountType defines the fundamental accounting classification of an account group.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid classification, in bootstrap order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// ParseAccountType validates a raw classification value against the closed enumeration.
// Unrecognized values are rejected at the boundary rather than downstream.
func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(raw) {
	case Asset, Liability, Equity, Income, Expense:
		return AccountType(raw), nil
	}
	return "", fmt.Errorf("invalid account type %q", raw)
}

// AccountGroup is a classification bucket that chart-of-account entries belong to.
// Groups are created at organization or project setup and rarely change thereafter;
// only the name may be updated once the group is referenced.
type AccountGroup struct {
	GroupID        string      `json:"groupID"`        // Primary Key (e.g., UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations.organization_id
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"` // Closed enumeration
	AuditFields
}
