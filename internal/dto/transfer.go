package dto

import "github.com/shopspring/decimal"

// TransferFundsRequest defines the data needed to move funds between two
// organization accounts.
type TransferFundsRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Comments      string          `json:"comments"`
}

// TransferResponse returns both legs of a completed transfer.
type TransferResponse struct {
	TransferID string              `json:"transferID"`
	Debit      TransactionResponse `json:"debit"`  // TRANSFER_OUT on the source account
	Credit     TransactionResponse `json:"credit"` // TRANSFER_IN on the destination account
}
