package repositories

import (
	"context"
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// ListChartAccountsFilter carries the repository-level filter and paging
// options for listing chart-of-account entries. SortBy/SortDir are validated
// against the allow-list by the service before reaching the repository.
type ListChartAccountsFilter struct {
	AccountGroupID *string
	Status         *domain.AccountStatus
	Limit          int
	Offset         int
	SortBy         string // one of: code, name, created_at
	SortDesc       bool
}

// ChartOfAccountReader defines read operations for chart-of-account data.
type ChartOfAccountReader interface {
	// FindChartAccountByID retrieves a specific entry by its identifier.
	FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// FindChartAccountByCode retrieves an entry by its organization-scoped code.
	FindChartAccountByCode(ctx context.Context, organizationID string, code string) (*domain.ChartOfAccount, error)

	// ListChartAccounts retrieves a filtered, paginated, sorted list of entries.
	ListChartAccounts(ctx context.Context, organizationID string, filter ListChartAccountsFilter) ([]domain.ChartOfAccount, error)
}

// ChartOfAccountWriter defines write operations for chart-of-account data.
type ChartOfAccountWriter interface {
	// SaveChartAccount persists a new entry. A duplicate code within the
	// organization surfaces as apperrors.ErrDuplicate.
	SaveChartAccount(ctx context.Context, account domain.ChartOfAccount) error

	// DeactivateChartAccount marks an entry INACTIVE. Historical postings are
	// unaffected; future postings against it are rejected.
	DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// ChartOfAccountRepositoryFacade combines all chart-of-account repository interfaces.
type ChartOfAccountRepositoryFacade interface {
	ChartOfAccountReader
	ChartOfAccountWriter
}
