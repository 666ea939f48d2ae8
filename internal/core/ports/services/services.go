package services

import (
	"context"

	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/propfolio/realty_ledger/internal/dto"
)

// OrganizationSvcFacade exposes organization lifecycle operations.
// Creating an organization also bootstraps its system chart-of-account
// entries and default organization account; system accounts are never
// created through the user-facing chart-of-accounts path.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// AccountGroupSvcFacade exposes the account group registry.
type AccountGroupSvcFacade interface {
	CreateGroup(ctx context.Context, organizationID string, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error)
	RenameGroup(ctx context.Context, organizationID string, groupID string, req dto.RenameAccountGroupRequest, userID string) (*domain.AccountGroup, error)
	ListGroups(ctx context.Context, organizationID string, params dto.ListAccountGroupsParams) ([]domain.AccountGroup, error)
}

// ChartOfAccountSvcFacade exposes the chart of accounts.
type ChartOfAccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error)
	GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.ChartOfAccount, error)
	ListAccounts(ctx context.Context, organizationID string, params dto.ListChartAccountsParams) ([]domain.ChartOfAccount, error)
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error
}

// OrgAccountSvcFacade exposes organization account management and balance reads.
// Balance mutation is deliberately absent: it happens only through the ledger
// and transfer services.
type OrgAccountSvcFacade interface {
	CreateOrgAccount(ctx context.Context, organizationID string, req dto.CreateOrgAccountRequest, creatorUserID string) (*domain.OrganizationAccount, error)
	GetBalance(ctx context.Context, organizationID string, orgAccountID string) (*dto.BalanceResponse, error)
	ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error)
}

// LedgerSvcFacade exposes transaction posting, reversal and history reads.
type LedgerSvcFacade interface {
	PostTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	ReverseTransaction(ctx context.Context, organizationID string, transactionID string, req dto.ReverseTransactionRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error)
	ListAccountTransactions(ctx context.Context, organizationID string, chartOfAccountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransferSvcFacade exposes atomic fund transfers between organization accounts.
type TransferSvcFacade interface {
	TransferFunds(ctx context.Context, organizationID string, req dto.TransferFundsRequest, userID string) (*dto.TransferResponse, error)
}

// ReportingSvcFacade exposes the read-only analytics queries.
type ReportingSvcFacade interface {
	QueryByDateRange(ctx context.Context, organizationID string, params dto.QueryByDateRangeParams) (*dto.QueryByDateRangeResponse, error)
}

// ServiceContainer bundles every service facade for injection into handlers.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	AccountGroup AccountGroupSvcFacade
	ChartAccount ChartOfAccountSvcFacade
	OrgAccount   OrgAccountSvcFacade
	Ledger       LedgerSvcFacade
	Transfer     TransferSvcFacade
	Reporting    ReportingSvcFacade
}
