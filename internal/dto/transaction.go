package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest defines the data needed to record a ledger posting.
// Amount must be strictly positive; the service enforces it beyond binding.
type PostTransactionRequest struct {
	ChartOfAccountID string          `json:"chartOfAccountID" binding:"required"`
	Type             string          `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER_IN TRANSFER_OUT ADJUSTMENT_CREDIT ADJUSTMENT_DEBIT"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	OrgAccountID     *string         `json:"orgAccountID"`
	Comments         string          `json:"comments"`
	ProjectID        *string         `json:"projectID"`
	CustomerID       *string         `json:"customerID"`
	UnitID           *string         `json:"unitID"`
	TransactionDate  *time.Time      `json:"transactionDate"` // Defaults to now (UTC)
}

// ReverseTransactionRequest defines the data needed to reverse a posting.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListTransactionsParams defines query parameters for an account's posting history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID          string                   `json:"transactionID"`
	OrganizationID         string                   `json:"organizationID"`
	ChartOfAccountID       string                   `json:"chartOfAccountID"`
	OrgAccountID           *string                  `json:"orgAccountID,omitempty"`
	TransferID             *string                  `json:"transferID,omitempty"`
	Type                   domain.TransactionType   `json:"type"`
	Amount                 decimal.Decimal          `json:"amount"`
	Comments               string                   `json:"comments"`
	ProjectID              *string                  `json:"projectID,omitempty"`
	CustomerID             *string                  `json:"customerID,omitempty"`
	UnitID                 *string                  `json:"unitID,omitempty"`
	Status                 domain.TransactionStatus `json:"status"`
	TransactionDate        time.Time                `json:"transactionDate"`
	OriginalTransactionID  *string                  `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string                  `json:"reversingTransactionID,omitempty"`
	RunningBalance         *decimal.Decimal         `json:"runningBalance,omitempty"`
	CreatedAt              time.Time                `json:"createdAt"`
	CreatedBy              string                   `json:"createdBy"`
}

// ListTransactionsResponse wraps a page of transactions plus its cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:          t.TransactionID,
		OrganizationID:         t.OrganizationID,
		ChartOfAccountID:       t.ChartOfAccountID,
		OrgAccountID:           t.OrgAccountID,
		TransferID:             t.TransferID,
		Type:                   t.Type,
		Amount:                 t.Amount,
		Comments:               t.Comments,
		ProjectID:              t.ProjectID,
		CustomerID:             t.CustomerID,
		UnitID:                 t.UnitID,
		Status:                 t.Status,
		TransactionDate:        t.TransactionDate,
		OriginalTransactionID:  t.OriginalTransactionID,
		ReversingTransactionID: t.ReversingTransactionID,
		RunningBalance:         t.RunningBalance,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
