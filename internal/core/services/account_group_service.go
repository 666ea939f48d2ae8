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

// AccountGroupService handles the account group registry of an organization.
type AccountGroupService struct {
	accountGroupRepo portsrepo.AccountGroupRepositoryFacade
	organizationRepo portsrepo.OrganizationReader
}

// NewAccountGroupService creates a new AccountGroupService.
func NewAccountGroupService(gr portsrepo.AccountGroupRepositoryFacade, or portsrepo.OrganizationReader) portssvc.AccountGroupSvcFacade {
	return &AccountGroupService{
		accountGroupRepo: gr,
		organizationRepo: or,
	}
}

var _ portssvc.AccountGroupSvcFacade = (*AccountGroupService)(nil)

// CreateGroup creates a new account group under the organization. The
// classification is fixed at creation and never changes afterwards.
func (s *AccountGroupService) CreateGroup(ctx context.Context, organizationID string, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("failed to validate organization %s: %w", organizationID, err)
	}

	now := time.Now().UTC()
	group := domain.AccountGroup{
		GroupID:        uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		AccountType:    accountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountGroupRepo.SaveAccountGroup(ctx, group); err != nil {
		logger.Error("Failed to save account group", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create account group: %w", err)
	}

	logger.Info("Account group created",
		slog.String("group_id", group.GroupID),
		slog.String("account_type", string(accountType)))
	return &group, nil
}

// RenameGroup updates a group's display name. The name is the only mutable
// attribute; classification changes would re-meaning historical postings.
func (s *AccountGroupService) RenameGroup(ctx context.Context, organizationID string, groupID string, req dto.RenameAccountGroupRequest, userID string) (*domain.AccountGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.accountGroupRepo.FindAccountGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account group %s: %w", groupID, err)
	}
	if group.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	if err := s.accountGroupRepo.RenameAccountGroup(ctx, groupID, req.Name, userID, now); err != nil {
		logger.Error("Failed to rename account group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to rename account group %s: %w", groupID, err)
	}

	group.Name = req.Name
	group.LastUpdatedAt = now
	group.LastUpdatedBy = userID
	return group, nil
}

// ListGroups returns the organization's account groups, optionally filtered
// by classification.
func (s *AccountGroupService) ListGroups(ctx context.Context, organizationID string, params dto.ListAccountGroupsParams) ([]domain.AccountGroup, error) {
	var accountType *domain.AccountType
	if params.AccountType != nil && *params.AccountType != "" {
		parsed, err := domain.ParseAccountType(*params.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		accountType = &parsed
	}

	groups, err := s.accountGroupRepo.ListAccountGroups(ctx, organizationID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list account groups for %s: %w", organizationID, err)
	}
	return groups, nil
}
