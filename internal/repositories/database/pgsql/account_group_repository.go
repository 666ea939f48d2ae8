package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	"github.com/propfolio/realty_ledger/internal/models"
)

type PgxAccountGroupRepository struct {
	BaseRepository
}

// newPgxAccountGroupRepository creates a new repository for account group data.
func newPgxAccountGroupRepository(pool *pgxpool.Pool) portsrepo.AccountGroupRepositoryFacade {
	return &PgxAccountGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountGroupRepositoryFacade = (*PgxAccountGroupRepository)(nil)

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toModelAccountGroup(d domain.AccountGroup) models.AccountGroup {
	return models.AccountGroup{
		GroupID:        d.GroupID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAccountGroup(m models.AccountGroup) domain.AccountGroup {
	return domain.AccountGroup{
		GroupID:        m.GroupID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveAccountGroup inserts a new account group.
func (r *PgxAccountGroupRepository) SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	m := toModelAccountGroup(group)

	query := `
		INSERT INTO account_groups (group_id, organization_id, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GroupID,
		m.OrganizationID,
		m.Name,
		m.AccountType,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save account group "+m.GroupID, err)
	}
	return nil
}

// FindAccountGroupByID retrieves an account group by its ID.
func (r *PgxAccountGroupRepository) FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	query := `
		SELECT group_id, organization_id, name, account_type, created_at, created_by, last_updated_at, last_updated_by
		FROM account_groups
		WHERE group_id = $1;
	`
	var m models.AccountGroup
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID,
		&m.OrganizationID,
		&m.Name,
		&m.AccountType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account group by ID "+groupID, err)
	}

	group := toDomainAccountGroup(m)
	return &group, nil
}

// ListAccountGroups retrieves the groups of an organization, optionally
// filtered by classification.
func (r *PgxAccountGroupRepository) ListAccountGroups(ctx context.Context, organizationID string, accountType *domain.AccountType) ([]domain.AccountGroup, error) {
	query := `
		SELECT group_id, organization_id, name, account_type, created_at, created_by, last_updated_at, last_updated_by
		FROM account_groups
		WHERE organization_id = $1
	`
	args := []interface{}{organizationID}
	if accountType != nil {
		query += ` AND account_type = $2`
		args = append(args, string(*accountType))
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account groups for organization "+organizationID, err)
	}
	defer rows.Close()

	groups := []domain.AccountGroup{}
	for rows.Next() {
		var m models.AccountGroup
		if err := rows.Scan(
			&m.GroupID,
			&m.OrganizationID,
			&m.Name,
			&m.AccountType,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account group row for organization "+organizationID, err)
		}
		groups = append(groups, toDomainAccountGroup(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account group rows for organization "+organizationID, err)
	}

	return groups, nil
}

// RenameAccountGroup updates a group's name.
func (r *PgxAccountGroupRepository) RenameAccountGroup(ctx context.Context, groupID string, name string, userID string, now time.Time) error {
	query := `
		UPDATE account_groups
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE group_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, groupID, name, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to rename account group "+groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
