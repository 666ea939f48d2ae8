package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/middleware"
)

// listSortFields maps the caller-facing sort field names to their columns.
// Anything outside this map is rejected before a query is built.
var listSortFields = map[string]string{
	"code":        "code",
	"name":        "name",
	"createdDate": "created_at",
}

// ChartOfAccountService handles the user-managed chart of accounts.
type ChartOfAccountService struct {
	chartAccountRepo portsrepo.ChartOfAccountRepositoryFacade
	accountGroupRepo portsrepo.AccountGroupReader
	orgAccountRepo   portsrepo.OrgAccountReader
}

// NewChartOfAccountService creates a new ChartOfAccountService.
func NewChartOfAccountService(cr portsrepo.ChartOfAccountRepositoryFacade, gr portsrepo.AccountGroupReader, oar portsrepo.OrgAccountReader) portssvc.ChartOfAccountSvcFacade {
	return &ChartOfAccountService{
		chartAccountRepo: cr,
		accountGroupRepo: gr,
		orgAccountRepo:   oar,
	}
}

var _ portssvc.ChartOfAccountSvcFacade = (*ChartOfAccountService)(nil)

// CreateAccount creates a new chart-of-account entry. The referenced group
// must belong to the same organization, and the code must be unique among the
// organization's active entries. Entries created here are never
// system-generated; those exist only from organization bootstrap.
func (s *ChartOfAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}

	group, err := s.accountGroupRepo.FindAccountGroupByID(ctx, req.AccountGroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, req.AccountGroupID)
		}
		return nil, fmt.Errorf("failed to validate account group %s: %w", req.AccountGroupID, err)
	}
	if group.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: account group %s does not belong to organization %s", apperrors.ErrValidation, req.AccountGroupID, organizationID)
	}

	if req.OrgAccountID != nil {
		orgAccount, err := s.orgAccountRepo.FindOrgAccountByID(ctx, *req.OrgAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: organization account %s not found", apperrors.ErrValidation, *req.OrgAccountID)
			}
			return nil, fmt.Errorf("failed to validate organization account %s: %w", *req.OrgAccountID, err)
		}
		if orgAccount.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: organization account %s does not belong to organization %s", apperrors.ErrValidation, *req.OrgAccountID, organizationID)
		}
	}

	now := time.Now().UTC()
	account := domain.ChartOfAccount{
		AccountID:         uuid.NewString(),
		OrganizationID:    organizationID,
		Code:              code,
		Name:              req.Name,
		AccountGroupID:    req.AccountGroupID,
		IsSystemGenerated: false,
		Status:            domain.StatusActive,
		OrgAccountID:      req.OrgAccountID,
		ProjectID:         req.ProjectID,
		UnitID:            req.UnitID,
		CustomerID:        req.CustomerID,
		VendorID:          req.VendorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.chartAccountRepo.SaveChartAccount(ctx, account); err != nil {
		logger.Error("Failed to save chart account", slog.String("error", err.Error()), slog.String("code", code))
		return nil, fmt.Errorf("failed to create account %s: %w", code, err)
	}

	logger.Info("Chart account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// GetAccountByID retrieves a chart-of-account entry scoped to the organization.
func (s *ChartOfAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.ChartOfAccount, error) {
	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts returns a filtered, paginated, sorted list of the
// organization's chart-of-account entries.
func (s *ChartOfAccountService) ListAccounts(ctx context.Context, organizationID string, params dto.ListChartAccountsParams) ([]domain.ChartOfAccount, error) {
	sortColumn, ok := listSortFields[params.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: invalid sort field %q", apperrors.ErrValidation, params.SortBy)
	}

	var sortDesc bool
	switch strings.ToLower(params.SortDir) {
	case "", "asc":
	case "desc":
		sortDesc = true
	default:
		return nil, fmt.Errorf("%w: invalid sort direction %q", apperrors.ErrValidation, params.SortDir)
	}

	filter := portsrepo.ListChartAccountsFilter{
		AccountGroupID: params.AccountGroupID,
		Limit:          params.Limit,
		Offset:         params.Offset,
		SortBy:         sortColumn,
		SortDesc:       sortDesc,
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if params.Status != nil && *params.Status != "" {
		switch domain.AccountStatus(*params.Status) {
		case domain.StatusActive, domain.StatusInactive:
			status := domain.AccountStatus(*params.Status)
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	accounts, err := s.chartAccountRepo.ListChartAccounts(ctx, organizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for %s: %w", organizationID, err)
	}
	return accounts, nil
}

// DeactivateAccount marks an entry INACTIVE so it rejects future postings.
// System-generated entries are immutable and cannot be deactivated. Historical
// postings against the entry are never touched.
func (s *ChartOfAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}
	if account.IsSystemGenerated {
		return fmt.Errorf("%w: system account %s cannot be deactivated", apperrors.ErrImmutableAccount, account.Code)
	}

	if err := s.chartAccountRepo.DeactivateChartAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate chart account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Chart account deactivated", slog.String("account_id", accountID), slog.String("user_id", userID))
	return nil
}
