package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	organizationRepo := newPgxOrganizationRepository(dbPool)
	accountGroupRepo := newPgxAccountGroupRepository(dbPool)
	chartAccountRepo := newPgxChartOfAccountRepository(dbPool)
	orgAccountRepo := newPgxOrgAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, orgAccountRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrganizationRepo: organizationRepo,
		AccountGroupRepo: accountGroupRepo,
		ChartAccountRepo: chartAccountRepo,
		OrgAccountRepo:   orgAccountRepo,
		TransactionRepo:  transactionRepo,
		ReportingRepo:    reportingRepo,
	}
}
