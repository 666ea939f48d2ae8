package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	"github.com/propfolio/realty_ledger/internal/models"
)

type PgxChartOfAccountRepository struct {
	BaseRepository
}

// newPgxChartOfAccountRepository creates a new repository for chart-of-account data.
func newPgxChartOfAccountRepository(pool *pgxpool.Pool) portsrepo.ChartOfAccountRepositoryFacade {
	return &PgxChartOfAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChartOfAccountRepositoryFacade = (*PgxChartOfAccountRepository)(nil)

// sortColumns maps the service-validated sort keys to real column names.
// Anything outside this map falls back to code ordering.
var sortColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"created_at": "created_at",
}

func toModelChartAccount(d domain.ChartOfAccount) models.ChartOfAccount {
	return models.ChartOfAccount{
		AccountID:         d.AccountID,
		OrganizationID:    d.OrganizationID,
		Code:              d.Code,
		Name:              d.Name,
		AccountGroupID:    d.AccountGroupID,
		IsSystemGenerated: d.IsSystemGenerated,
		Status:            string(d.Status),
		OrgAccountID:      d.OrgAccountID,
		ProjectID:         d.ProjectID,
		UnitID:            d.UnitID,
		CustomerID:        d.CustomerID,
		VendorID:          d.VendorID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainChartAccount(m models.ChartOfAccount) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:         m.AccountID,
		OrganizationID:    m.OrganizationID,
		Code:              m.Code,
		Name:              m.Name,
		AccountGroupID:    m.AccountGroupID,
		IsSystemGenerated: m.IsSystemGenerated,
		Status:            domain.AccountStatus(m.Status),
		OrgAccountID:      m.OrgAccountID,
		ProjectID:         m.ProjectID,
		UnitID:            m.UnitID,
		CustomerID:        m.CustomerID,
		VendorID:          m.VendorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const chartAccountColumns = `account_id, organization_id, code, name, account_group_id, is_system_generated, status, org_account_id, project_id, unit_id, customer_id, vendor_id, created_at, created_by, last_updated_at, last_updated_by`

func scanChartAccount(row pgx.Row) (models.ChartOfAccount, error) {
	var m models.ChartOfAccount
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.AccountGroupID,
		&m.IsSystemGenerated,
		&m.Status,
		&m.OrgAccountID,
		&m.ProjectID,
		&m.UnitID,
		&m.CustomerID,
		&m.VendorID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveChartAccount inserts a new chart-of-account entry. The partial unique
// index on (organization_id, code) for ACTIVE rows enforces code uniqueness.
func (r *PgxChartOfAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartOfAccount) error {
	m := toModelChartAccount(account)

	query := `
		INSERT INTO chart_of_accounts (` + chartAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.AccountGroupID,
		m.IsSystemGenerated,
		m.Status,
		m.OrgAccountID,
		m.ProjectID,
		m.UnitID,
		m.CustomerID,
		m.VendorID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %q already exists for organization %s", apperrors.ErrDuplicate, m.Code, m.OrganizationID)
		}
		return apperrors.NewAppError(500, "failed to save chart account "+m.AccountID, err)
	}
	return nil
}

// FindChartAccountByID retrieves an entry by its ID.
func (r *PgxChartOfAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE account_id = $1;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find chart account by ID "+accountID, err)
	}

	account := toDomainChartAccount(m)
	return &account, nil
}

// FindChartAccountByCode retrieves an entry by its organization-scoped code.
func (r *PgxChartOfAccountRepository) FindChartAccountByCode(ctx context.Context, organizationID string, code string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE organization_id = $1 AND code = $2 AND status = 'ACTIVE';`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find chart account by code "+code, err)
	}

	account := toDomainChartAccount(m)
	return &account, nil
}

// ListChartAccounts retrieves a filtered, paginated, sorted list of entries.
func (r *PgxChartOfAccountRepository) ListChartAccounts(ctx context.Context, organizationID string, filter portsrepo.ListChartAccountsFilter) ([]domain.ChartOfAccount, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if filter.AccountGroupID != nil {
		args = append(args, *filter.AccountGroupID)
		query += fmt.Sprintf(" AND account_group_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "code"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d;", column, direction, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart accounts for organization "+organizationID, err)
	}
	defer rows.Close()

	accounts := []domain.ChartOfAccount{}
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart account row for organization "+organizationID, err)
		}
		accounts = append(accounts, toDomainChartAccount(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart account rows for organization "+organizationID, err)
	}

	return accounts, nil
}

// DeactivateChartAccount marks an entry INACTIVE if it was ACTIVE.
func (r *PgxChartOfAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET status = 'INACTIVE', last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND status = 'ACTIVE';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate chart account "+accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it was already inactive.
		if _, findErr := r.FindChartAccountByID(ctx, accountID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: chart account %s is already inactive", apperrors.ErrConflict, accountID)
	}

	return nil
}
