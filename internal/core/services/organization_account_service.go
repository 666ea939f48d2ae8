package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/middleware"
)

// OrganizationAccountService manages the balance-bearing accounts of an
// organization. Balances are read here but only ever mutated through the
// ledger and transfer services.
type OrganizationAccountService struct {
	orgAccountRepo   portsrepo.OrgAccountRepositoryFacade
	organizationRepo portsrepo.OrganizationReader
}

// NewOrganizationAccountService creates a new OrganizationAccountService.
func NewOrganizationAccountService(oar portsrepo.OrgAccountRepositoryFacade, or portsrepo.OrganizationReader) portssvc.OrgAccountSvcFacade {
	return &OrganizationAccountService{
		orgAccountRepo:   oar,
		organizationRepo: or,
	}
}

var _ portssvc.OrgAccountSvcFacade = (*OrganizationAccountService)(nil)

// CreateOrgAccount creates a new CASH or BANK account. An initial balance may
// be seeded at creation; afterwards the balance moves only via postings.
func (s *OrganizationAccountService) CreateOrgAccount(ctx context.Context, organizationID string, req dto.CreateOrgAccountRequest, creatorUserID string) (*domain.OrganizationAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("failed to validate organization %s: %w", organizationID, err)
	}

	now := time.Now().UTC()
	account := domain.OrganizationAccount{
		OrgAccountID:   uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Kind:           domain.OrgAccountKind(req.Kind),
		Balance:        req.InitialBalance,
		AllowOverdraft: req.AllowOverdraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgAccountRepo.SaveOrgAccount(ctx, account); err != nil {
		logger.Error("Failed to save organization account", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create organization account: %w", err)
	}

	logger.Info("Organization account created",
		slog.String("org_account_id", account.OrgAccountID),
		slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetBalance returns the account's current balance with a read timestamp.
func (s *OrganizationAccountService) GetBalance(ctx context.Context, organizationID string, orgAccountID string) (*dto.BalanceResponse, error) {
	account, err := s.orgAccountRepo.FindOrgAccountByID(ctx, orgAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization account %s: %w", orgAccountID, err)
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	return &dto.BalanceResponse{
		OrgAccountID: account.OrgAccountID,
		Balance:      account.Balance,
		AsOf:         time.Now().UTC(),
	}, nil
}

// ListOrgAccounts returns every organization account of an organization.
func (s *OrganizationAccountService) ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error) {
	accounts, err := s.orgAccountRepo.ListOrgAccounts(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization accounts for %s: %w", organizationID, err)
	}
	return accounts, nil
}
