package repositories

import (
	"context"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByTransferID retrieves both legs of a fund transfer.
	FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error)

	// ListTransactionsByChartAccount retrieves a cursor-paginated history of
	// postings against a chart-of-account entry, newest first. It returns the
	// transactions, a token for the next page, and an error.
	ListTransactionsByChartAccount(ctx context.Context, organizationID string, chartOfAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the mutating ledger operations. Every method runs
// as a single committed database transaction: the ledger row(s) and any
// organization account balance mutation are persisted together or not at all.
type TransactionWriter interface {
	// SaveTransaction appends a transaction. When the transaction links an
	// organization account, the account row is locked, the signed amount is
	// applied to its balance, and a non-overdraft account going negative
	// aborts the whole operation with apperrors.ErrInsufficientFunds.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransferPair appends both legs of a fund transfer and applies both
	// balance mutations atomically. Accounts are locked in ascending id order.
	SaveTransferPair(ctx context.Context, debit domain.Transaction, credit domain.Transaction) error

	// SaveReversal appends the offsetting transaction and marks the original
	// REVERSED, linking the two. A concurrently created reversal surfaces as
	// apperrors.ErrConflict.
	SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction management.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
