package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	"github.com/propfolio/realty_ledger/internal/models"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func toModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveOrganizationWithDefaults persists the organization plus its bootstrap
// fixtures in one database transaction. System chart-of-account entries exist
// only because of this method; the user-facing creation path never sets
// is_system_generated.
func (r *PgxOrganizationRepository) SaveOrganizationWithDefaults(ctx context.Context, org domain.Organization, groups []domain.AccountGroup, systemAccounts []domain.ChartOfAccount, defaultAccount domain.OrganizationAccount) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelOrg := toModelOrganization(org)
	orgQuery := `
		INSERT INTO organizations (organization_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, orgQuery,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.IsActive,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert organization "+modelOrg.OrganizationID, err)
	}

	batch := &pgx.Batch{}
	groupQuery := `
		INSERT INTO account_groups (group_id, organization_id, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, g := range groups {
		m := toModelAccountGroup(g)
		batch.Queue(groupQuery, m.GroupID, m.OrganizationID, m.Name, m.AccountType,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	accountQuery := `
		INSERT INTO chart_of_accounts (account_id, organization_id, code, name, account_group_id, is_system_generated, status, org_account_id, project_id, unit_id, customer_id, vendor_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, a := range systemAccounts {
		m := toModelChartAccount(a)
		batch.Queue(accountQuery, m.AccountID, m.OrganizationID, m.Code, m.Name, m.AccountGroupID,
			m.IsSystemGenerated, m.Status, m.OrgAccountID, m.ProjectID, m.UnitID, m.CustomerID, m.VendorID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	orgAccount := toModelOrgAccount(defaultAccount)
	orgAccountQuery := `
		INSERT INTO organization_accounts (org_account_id, organization_id, name, kind, balance, allow_overdraft, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch.Queue(orgAccountQuery, orgAccount.OrgAccountID, orgAccount.OrganizationID, orgAccount.Name,
		orgAccount.Kind, orgAccount.Balance, orgAccount.AllowOverdraft,
		orgAccount.CreatedAt, orgAccount.CreatedBy, orgAccount.LastUpdatedAt, orgAccount.LastUpdatedBy)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert bootstrap fixtures for organization "+modelOrg.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}

	org := toDomainOrganization(m)
	return &org, nil
}
