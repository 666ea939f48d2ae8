package repositories

import (
	"context"
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// AccountGroupReader defines read operations for account group data.
type AccountGroupReader interface {
	// FindAccountGroupByID retrieves a specific account group by its identifier.
	FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error)

	// ListAccountGroups retrieves the groups of an organization, optionally
	// filtered by classification. Ordered by name.
	ListAccountGroups(ctx context.Context, organizationID string, accountType *domain.AccountType) ([]domain.AccountGroup, error)
}

// AccountGroupWriter defines write operations for account group data.
type AccountGroupWriter interface {
	// SaveAccountGroup persists a new account group.
	SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error

	// RenameAccountGroup updates a group's name. Renaming is the only mutation
	// allowed once chart-of-account entries reference the group.
	RenameAccountGroup(ctx context.Context, groupID string, name string, userID string, now time.Time) error
}

// AccountGroupRepositoryFacade combines all account group repository interfaces.
type AccountGroupRepositoryFacade interface {
	AccountGroupReader
	AccountGroupWriter
}
