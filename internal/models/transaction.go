package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table. Rows are append-only; the only
// columns ever updated after insert are status and reversing_transaction_id.
type Transaction struct {
	TransactionID          string           `db:"transaction_id"`
	OrganizationID         string           `db:"organization_id"`
	ChartOfAccountID       string           `db:"chart_of_account_id"`
	OrgAccountID           *string          `db:"org_account_id"`
	TransferID             *string          `db:"transfer_id"`
	Type                   string           `db:"transaction_type"`
	Amount                 decimal.Decimal  `db:"amount"`
	Comments               string           `db:"comments"`
	ProjectID              *string          `db:"project_id"`
	CustomerID             *string          `db:"customer_id"`
	UnitID                 *string          `db:"unit_id"`
	Status                 string           `db:"status"`
	TransactionDate        time.Time        `db:"transaction_date"`
	OriginalTransactionID  *string          `db:"original_transaction_id"`
	ReversingTransactionID *string          `db:"reversing_transaction_id"`
	RunningBalance         *decimal.Decimal `db:"running_balance"`
	AuditFields
}
