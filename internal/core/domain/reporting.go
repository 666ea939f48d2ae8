package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionProjection is the read-model row returned by the analytics layer.
// It joins the ledger row with the display names of its linked entities.
type TransactionProjection struct {
	TransactionID    string           `json:"transactionID"`
	ChartOfAccountID string           `json:"chartOfAccountID"`
	AccountCode      string           `json:"accountCode"`
	AccountName      string           `json:"accountName"`
	OrgAccountName   *string          `json:"orgAccountName,omitempty"`
	Type             TransactionType  `json:"type"`
	Amount           decimal.Decimal  `json:"amount"`
	Comments         string           `json:"comments"`
	ProjectID        *string          `json:"projectID,omitempty"`
	CustomerID       *string          `json:"customerID,omitempty"`
	UnitID           *string          `json:"unitID,omitempty"`
	Status           TransactionStatus `json:"status"`
	TransactionDate  time.Time        `json:"transactionDate"`
	CreatedAt        time.Time        `json:"createdAt"`
	CreatedBy        string           `json:"createdBy"`
}
