package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger posting. Each type carries a fixed
// balance effect on a linked organization account (see utils/ledger).
type TransactionType string

const (
	TxnIncome           TransactionType = "INCOME"
	TxnExpense          TransactionType = "EXPENSE"
	TxnTransferIn       TransactionType = "TRANSFER_IN"
	TxnTransferOut      TransactionType = "TRANSFER_OUT"
	TxnAdjustmentCredit TransactionType = "ADJUSTMENT_CREDIT"
	TxnAdjustmentDebit  TransactionType = "ADJUSTMENT_DEBIT"
)

// ParseTransactionType validates a raw value against the closed enumeration.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TxnIncome, TxnExpense, TxnTransferIn, TxnTransferOut, TxnAdjustmentCredit, TxnAdjustmentDebit:
		return TransactionType(raw), nil
	}
	return "", fmt.Errorf("invalid transaction type %q", raw)
}

// TransactionStatus indicates the state of a ledger transaction.
type TransactionStatus string

const (
	TxnPosted   TransactionStatus = "POSTED"
	TxnReversed TransactionStatus = "REVERSED"
)

// Transaction is a single, append-only record of a monetary movement.
// Once committed it is never mutated or deleted; corrections happen via
// offsetting reversal transactions linked through OriginalTransactionID.
type Transaction struct {
	TransactionID    string            `json:"transactionID"`  // Primary Key (e.g., UUID)
	OrganizationID   string            `json:"organizationID"` // FK -> organizations.organization_id
	ChartOfAccountID string            `json:"chartOfAccountID"`
	OrgAccountID     *string           `json:"orgAccountID,omitempty"` // Optional balance-bearing account
	TransferID       *string           `json:"transferID,omitempty"`   // Set on both legs of a fund transfer
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"` // Always positive; sign comes from Type
	Comments         string            `json:"comments"`
	ProjectID        *string           `json:"projectID,omitempty"` // Denormalized reporting tags
	CustomerID       *string           `json:"customerID,omitempty"`
	UnitID           *string           `json:"unitID,omitempty"`
	Status           TransactionStatus `json:"status"`
	TransactionDate  time.Time         `json:"transactionDate"`
	// Reversal linkage: a reversal points at its original, the original at its reversal.
	OriginalTransactionID  *string          `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string          `json:"reversingTransactionID,omitempty"`
	RunningBalance         *decimal.Decimal `json:"runningBalance,omitempty"` // Org account balance after this posting
	AuditFields
}

// IsReversal reports whether this transaction offsets an earlier one.
func (t Transaction) IsReversal() bool {
	return t.OriginalTransactionID != nil
}

// IsTransferLeg reports whether this transaction is half of a fund transfer pair.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferID != nil
}
