package repositories

import (
	"context"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// OrganizationReader defines read operations for organization data.
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data.
type OrganizationWriter interface {
	// SaveOrganizationWithDefaults persists a new organization together with its
	// bootstrap fixtures (account groups, system chart-of-account entries and the
	// default organization account) in a single database transaction.
	SaveOrganizationWithDefaults(ctx context.Context, org domain.Organization, groups []domain.AccountGroup, systemAccounts []domain.ChartOfAccount, defaultAccount domain.OrganizationAccount) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
