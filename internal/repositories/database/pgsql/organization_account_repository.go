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
	"github.com/shopspring/decimal"
)

type PgxOrgAccountRepository struct {
	BaseRepository
}

// newPgxOrgAccountRepository creates a new repository for organization account data.
func newPgxOrgAccountRepository(pool *pgxpool.Pool) portsrepo.OrgAccountRepositoryFacade {
	return &PgxOrgAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrgAccountRepositoryFacade = (*PgxOrgAccountRepository)(nil)

func toModelOrgAccount(d domain.OrganizationAccount) models.OrganizationAccount {
	return models.OrganizationAccount{
		OrgAccountID:   d.OrgAccountID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Kind:           string(d.Kind),
		Balance:        d.Balance,
		AllowOverdraft: d.AllowOverdraft,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainOrgAccount(m models.OrganizationAccount) domain.OrganizationAccount {
	return domain.OrganizationAccount{
		OrgAccountID:   m.OrgAccountID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Kind:           domain.OrgAccountKind(m.Kind),
		Balance:        m.Balance,
		AllowOverdraft: m.AllowOverdraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const orgAccountColumns = `org_account_id, organization_id, name, kind, balance, allow_overdraft, created_at, created_by, last_updated_at, last_updated_by`

func scanOrgAccount(row pgx.Row) (models.OrganizationAccount, error) {
	var m models.OrganizationAccount
	err := row.Scan(
		&m.OrgAccountID,
		&m.OrganizationID,
		&m.Name,
		&m.Kind,
		&m.Balance,
		&m.AllowOverdraft,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrgAccount inserts a new organization account.
func (r *PgxOrgAccountRepository) SaveOrgAccount(ctx context.Context, account domain.OrganizationAccount) error {
	m := toModelOrgAccount(account)

	query := `
		INSERT INTO organization_accounts (` + orgAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrgAccountID,
		m.OrganizationID,
		m.Name,
		m.Kind,
		m.Balance,
		m.AllowOverdraft,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save organization account "+m.OrgAccountID, err)
	}
	return nil
}

// FindOrgAccountByID retrieves an organization account by its ID.
func (r *PgxOrgAccountRepository) FindOrgAccountByID(ctx context.Context, orgAccountID string) (*domain.OrganizationAccount, error) {
	query := `SELECT ` + orgAccountColumns + ` FROM organization_accounts WHERE org_account_id = $1;`

	m, err := scanOrgAccount(r.Pool.QueryRow(ctx, query, orgAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization account by ID "+orgAccountID, err)
	}

	account := toDomainOrgAccount(m)
	return &account, nil
}

// ListOrgAccounts retrieves every organization account of an organization.
func (r *PgxOrgAccountRepository) ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error) {
	query := `SELECT ` + orgAccountColumns + ` FROM organization_accounts WHERE organization_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organization accounts for "+organizationID, err)
	}
	defer rows.Close()

	accounts := []domain.OrganizationAccount{}
	for rows.Next() {
		m, err := scanOrgAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization account row for "+organizationID, err)
		}
		accounts = append(accounts, toDomainOrgAccount(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization account rows for "+organizationID, err)
	}

	return accounts, nil
}

// FindOrgAccountsByIDsForUpdate selects accounts and locks their rows FOR UPDATE.
// Rows are locked in ascending org_account_id order so that concurrent
// transfers touching the same pair never deadlock. Must be called within a
// transaction.
func (r *PgxOrgAccountRepository) FindOrgAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, orgAccountIDs []string) (map[string]domain.OrganizationAccount, error) {
	if len(orgAccountIDs) == 0 {
		return map[string]domain.OrganizationAccount{}, nil
	}

	query := `
		SELECT ` + orgAccountColumns + `
		FROM organization_accounts
		WHERE org_account_id = ANY($1)
		ORDER BY org_account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, orgAccountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organization accounts for update", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.OrganizationAccount)
	for rows.Next() {
		m, err := scanOrgAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked organization account row", err)
		}
		accountsMap[m.OrgAccountID] = toDomainOrgAccount(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked organization account rows", err)
	}

	if len(accountsMap) != len(orgAccountIDs) {
		missing := []string{}
		for _, id := range orgAccountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock organization accounts: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceDeltaInTx adds delta to the locked account's balance. The caller
// must hold the row lock and have verified the overdraft invariant.
func (r *PgxOrgAccountRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, orgAccountID string, delta decimal.Decimal, userID string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}

	query := `
		UPDATE organization_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE org_account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, orgAccountID, delta, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for organization account "+orgAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: organization account %s not found during balance update", apperrors.ErrNotFound, orgAccountID)
	}
	return nil
}
