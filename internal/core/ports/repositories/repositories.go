package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	AccountGroupRepo AccountGroupRepositoryFacade
	ChartAccountRepo ChartOfAccountRepositoryFacade
	OrgAccountRepo   OrgAccountRepositoryFacade
	TransactionRepo  TransactionRepositoryWithTx
	ReportingRepo    ReportingReader
}
