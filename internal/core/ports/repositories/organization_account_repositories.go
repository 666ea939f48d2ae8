package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrgAccountReader defines read operations for organization account data.
type OrgAccountReader interface {
	// FindOrgAccountByID retrieves a specific organization account.
	FindOrgAccountByID(ctx context.Context, orgAccountID string) (*domain.OrganizationAccount, error)

	// ListOrgAccounts retrieves every organization account of an organization.
	ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error)
}

// OrgAccountWriter defines write operations for organization account data.
// Balance is intentionally absent here: it moves only through the
// transaction-support methods below, inside a ledger posting or fund transfer.
type OrgAccountWriter interface {
	// SaveOrgAccount persists a new organization account.
	SaveOrgAccount(ctx context.Context, account domain.OrganizationAccount) error
}

// OrgAccountTransactionSupport defines the balance choke point. Both methods
// must be called within an open database transaction.
type OrgAccountTransactionSupport interface {
	// FindOrgAccountsByIDsForUpdate selects the accounts and locks their rows
	// FOR UPDATE in ascending id order to prevent deadlock between concurrent
	// transfers touching the same pair.
	FindOrgAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, orgAccountIDs []string) (map[string]domain.OrganizationAccount, error)

	// ApplyBalanceDeltaInTx adds delta to the locked account's balance.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, orgAccountID string, delta decimal.Decimal, userID string, now time.Time) error
}

// OrgAccountRepositoryFacade combines all organization account repository interfaces.
type OrgAccountRepositoryFacade interface {
	OrgAccountReader
	OrgAccountWriter
	OrgAccountTransactionSupport
}
