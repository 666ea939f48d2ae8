package domain

import "github.com/shopspring/decimal"

// OrgAccountKind distinguishes the funded account variants an organization holds.
type OrgAccountKind string

const (
	KindCash OrgAccountKind = "CASH"
	KindBank OrgAccountKind = "BANK"
)

// OrganizationAccount is a balance-bearing account (cash/bank) used for fund
// transfers and payment settlement. Balance is mutated only through ledger
// postings or fund transfers, never written directly.
type OrganizationAccount struct {
	OrgAccountID   string          `json:"orgAccountID"`   // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"` // FK -> organizations.organization_id
	Name           string          `json:"name"`
	Kind           OrgAccountKind  `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	AllowOverdraft bool            `json:"allowOverdraft"` // When false the balance must never go negative
	AuditFields
}
