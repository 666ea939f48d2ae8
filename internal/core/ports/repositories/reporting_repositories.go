package repositories

import (
	"context"
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// ReportingQuery carries the filters for a date-ranged ledger query.
// Dates are inclusive; the service validates StartDate <= EndDate.
type ReportingQuery struct {
	StartDate        time.Time
	EndDate          time.Time
	TransactionType  *domain.TransactionType
	ChartOfAccountID *string
	Limit            int
	NextToken        *string
}

// ReportingReader defines the read-only analytics queries over the ledger.
// Implementations must never mutate state and must observe a consistent
// snapshot (a transfer's debit is never visible without its paired credit).
type ReportingReader interface {
	// QueryTransactionsByDateRange returns transaction projections matching the
	// query, newest first, with a cursor token for the next page.
	QueryTransactionsByDateRange(ctx context.Context, organizationID string, query ReportingQuery) ([]domain.TransactionProjection, *string, error)
}
