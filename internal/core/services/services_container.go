package services

import (
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	container.AccountGroup = NewAccountGroupService(repos.AccountGroupRepo, repos.OrganizationRepo)
	container.ChartAccount = NewChartOfAccountService(repos.ChartAccountRepo, repos.AccountGroupRepo, repos.OrgAccountRepo)
	container.OrgAccount = NewOrganizationAccountService(repos.OrgAccountRepo, repos.OrganizationRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.ChartAccountRepo, repos.OrgAccountRepo)
	container.Transfer = NewTransferService(repos.TransactionRepo, repos.ChartAccountRepo, repos.OrgAccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
