package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// Names of the account groups seeded for every new organization, one per
// classification.
var defaultGroupNames = map[domain.AccountType]string{
	domain.Asset:     "Assets",
	domain.Liability: "Liabilities",
	domain.Equity:    "Equity",
	domain.Income:    "Income",
	domain.Expense:   "Expenses",
}

// OrganizationService handles organization lifecycle and bootstrap.
type OrganizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(or portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &OrganizationService{organizationRepo: or}
}

var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// CreateOrganization creates a new organization together with its bootstrap
// fixtures: the five default account groups, a system chart-of-account entry
// under each, and a default CASH organization account. Everything is persisted
// in one database transaction so a half-bootstrapped organization can never
// exist.
func (s *OrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
		AuditFields:    audit,
	}

	groups := make([]domain.AccountGroup, 0, len(domain.AccountTypes))
	systemAccounts := make([]domain.ChartOfAccount, 0, len(domain.AccountTypes))
	for _, accountType := range domain.AccountTypes {
		group := domain.AccountGroup{
			GroupID:        uuid.NewString(),
			OrganizationID: org.OrganizationID,
			Name:           defaultGroupNames[accountType],
			AccountType:    accountType,
			AuditFields:    audit,
		}
		groups = append(groups, group)

		systemAccounts = append(systemAccounts, domain.ChartOfAccount{
			AccountID:         uuid.NewString(),
			OrganizationID:    org.OrganizationID,
			Code:              fmt.Sprintf("SYS-%s", accountType),
			Name:              fmt.Sprintf("System %s", defaultGroupNames[accountType]),
			AccountGroupID:    group.GroupID,
			IsSystemGenerated: true,
			Status:            domain.StatusActive,
			AuditFields:       audit,
		})
	}

	defaultAccount := domain.OrganizationAccount{
		OrgAccountID:   uuid.NewString(),
		OrganizationID: org.OrganizationID,
		Name:           "Main Cash",
		Kind:           domain.KindCash,
		Balance:        decimal.Zero,
		AllowOverdraft: false,
		AuditFields:    audit,
	}

	if err := s.organizationRepo.SaveOrganizationWithDefaults(ctx, org, groups, systemAccounts, defaultAccount); err != nil {
		logger.Error("Failed to create organization", slog.String("error", err.Error()), slog.String("organization_name", req.Name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.Info("Organization created",
		slog.String("organization_id", org.OrganizationID),
		slog.String("creator_user_id", creatorUserID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization by its identifier.
func (s *OrganizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization %s: %w", organizationID, err)
	}
	return org, nil
}
