package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	"github.com/propfolio/realty_ledger/internal/utils/pagination"
)

// PgxReportingRepository serves the read-only analytics queries. It only ever
// issues SELECTs; MVCC gives each query a consistent snapshot, so a transfer's
// two legs are either both visible or both absent.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for analytics queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingReader = (*PgxReportingRepository)(nil)

// QueryTransactionsByDateRange returns projection rows for the organization's
// ledger activity inside the inclusive date window, newest first.
func (r *PgxReportingRepository) QueryTransactionsByDateRange(ctx context.Context, organizationID string, q portsrepo.ReportingQuery) ([]domain.TransactionProjection, *string, error) {
	conditions := []string{
		"t.organization_id = $1",
		"t.transaction_date >= $2",
		"t.transaction_date <= $3",
	}
	args := []any{organizationID, q.StartDate, q.EndDate}

	if q.TransactionType != nil {
		args = append(args, string(*q.TransactionType))
		conditions = append(conditions, fmt.Sprintf("t.transaction_type = $%d", len(args)))
	}
	if q.ChartOfAccountID != nil {
		args = append(args, *q.ChartOfAccountID)
		conditions = append(conditions, fmt.Sprintf("t.chart_of_account_id = $%d", len(args)))
	}
	if q.NextToken != nil && *q.NextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*q.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		args = append(args, cursorTime, cursorID)
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, q.Limit+1)
	query := fmt.Sprintf(`
		SELECT
			t.transaction_id, t.chart_of_account_id, c.code, c.name, oa.name,
			t.transaction_type, t.amount, t.comments,
			t.project_id, t.customer_id, t.unit_id,
			t.status, t.transaction_date, t.created_at, t.created_by
		FROM transactions t
		JOIN chart_of_accounts c ON c.account_id = t.chart_of_account_id
		LEFT JOIN organization_accounts oa ON oa.org_account_id = t.org_account_id
		WHERE %s
		ORDER BY t.created_at DESC, t.transaction_id DESC
		LIMIT $%d;
	`, strings.Join(conditions, " AND "), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger activity for organization "+organizationID, err)
	}
	defer rows.Close()

	projections := []domain.TransactionProjection{}
	for rows.Next() {
		var p domain.TransactionProjection
		err := rows.Scan(
			&p.TransactionID,
			&p.ChartOfAccountID,
			&p.AccountCode,
			&p.AccountName,
			&p.OrgAccountName,
			&p.Type,
			&p.Amount,
			&p.Comments,
			&p.ProjectID,
			&p.CustomerID,
			&p.UnitID,
			&p.Status,
			&p.TransactionDate,
			&p.CreatedAt,
			&p.CreatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger activity row", err)
		}
		projections = append(projections, p)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger activity rows", err)
	}

	var token *string
	if len(projections) > q.Limit {
		projections = projections[:q.Limit]
		last := projections[len(projections)-1]
		encoded := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		token = &encoded
	}

	return projections, token, nil
}
