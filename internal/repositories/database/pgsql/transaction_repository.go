package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	"github.com/propfolio/realty_ledger/internal/models"
	"github.com/propfolio/realty_ledger/internal/utils/ledger"
	"github.com/propfolio/realty_ledger/internal/utils/pagination"
)

// PgxTransactionRepository persists ledger transactions. Every mutating method
// runs as one committed database transaction so the append-only ledger and the
// organization account balances can never diverge.
type PgxTransactionRepository struct {
	BaseRepository
	orgAccounts portsrepo.OrgAccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, orgAccounts portsrepo.OrgAccountTransactionSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		orgAccounts:    orgAccounts,
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		OrganizationID:         d.OrganizationID,
		ChartOfAccountID:       d.ChartOfAccountID,
		OrgAccountID:           d.OrgAccountID,
		TransferID:             d.TransferID,
		Type:                   string(d.Type),
		Amount:                 d.Amount,
		Comments:               d.Comments,
		ProjectID:              d.ProjectID,
		CustomerID:             d.CustomerID,
		UnitID:                 d.UnitID,
		Status:                 string(d.Status),
		TransactionDate:        d.TransactionDate,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		RunningBalance:         d.RunningBalance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		OrganizationID:         m.OrganizationID,
		ChartOfAccountID:       m.ChartOfAccountID,
		OrgAccountID:           m.OrgAccountID,
		TransferID:             m.TransferID,
		Type:                   domain.TransactionType(m.Type),
		Amount:                 m.Amount,
		Comments:               m.Comments,
		ProjectID:              m.ProjectID,
		CustomerID:             m.CustomerID,
		UnitID:                 m.UnitID,
		Status:                 domain.TransactionStatus(m.Status),
		TransactionDate:        m.TransactionDate,
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		RunningBalance:         m.RunningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, organization_id, chart_of_account_id, org_account_id, transfer_id, transaction_type, amount, comments, project_id, customer_id, unit_id, status, transaction_date, original_transaction_id, reversing_transaction_id, running_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.ChartOfAccountID,
		&m.OrgAccountID,
		&m.TransferID,
		&m.Type,
		&m.Amount,
		&m.Comments,
		&m.ProjectID,
		&m.CustomerID,
		&m.UnitID,
		&m.Status,
		&m.TransactionDate,
		&m.OriginalTransactionID,
		&m.ReversingTransactionID,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OrganizationID,
		m.ChartOfAccountID,
		m.OrgAccountID,
		m.TransferID,
		m.Type,
		m.Amount,
		m.Comments,
		m.ProjectID,
		m.CustomerID,
		m.UnitID,
		m.Status,
		m.TransactionDate,
		m.OriginalTransactionID,
		m.ReversingTransactionID,
		m.RunningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// applyPostingInTx locks the linked organization account, verifies the
// overdraft invariant, applies the signed amount to the balance and stamps the
// resulting running balance onto txn. Transactions without an organization
// account link pass through untouched.
func (r *PgxTransactionRepository) applyPostingInTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	if txn.OrgAccountID == nil {
		return nil
	}

	accounts, err := r.orgAccounts.FindOrgAccountsByIDsForUpdate(ctx, tx, []string{*txn.OrgAccountID})
	if err != nil {
		return err
	}
	account := accounts[*txn.OrgAccountID]

	if account.OrganizationID != txn.OrganizationID {
		return fmt.Errorf("%w: organization account %s does not belong to organization %s", apperrors.ErrValidation, account.OrgAccountID, txn.OrganizationID)
	}

	delta, err := ledger.SignedAmount(txn.Type, txn.Amount)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	newBalance, err := ledger.NextBalance(account.Balance, delta, account.AllowOverdraft)
	if err != nil {
		return fmt.Errorf("organization account %s: %w", account.OrgAccountID, err)
	}
	txn.RunningBalance = &newBalance

	return r.orgAccounts.ApplyBalanceDeltaInTx(ctx, tx, account.OrgAccountID, delta, txn.CreatedBy, txn.LastUpdatedAt)
}

// SaveTransaction appends a single ledger transaction, applying its balance
// effect when an organization account is linked.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return withContentionRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = r.Rollback(ctx, tx) }()

		if err := r.applyPostingInTx(ctx, tx, &txn); err != nil {
			return err
		}
		if err := insertTransactionInTx(ctx, tx, toModelTransaction(txn)); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	})
}

// SaveTransferPair appends both legs of a fund transfer and moves both
// balances atomically. Both accounts are locked up front, in ascending id
// order, before either balance is read or written.
func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, debit domain.Transaction, credit domain.Transaction) error {
	if debit.OrgAccountID == nil || credit.OrgAccountID == nil {
		return fmt.Errorf("%w: both transfer legs must reference an organization account", apperrors.ErrValidation)
	}

	return withContentionRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = r.Rollback(ctx, tx) }()

		accounts, err := r.orgAccounts.FindOrgAccountsByIDsForUpdate(ctx, tx, []string{*debit.OrgAccountID, *credit.OrgAccountID})
		if err != nil {
			return err
		}

		for _, leg := range []*domain.Transaction{&debit, &credit} {
			account := accounts[*leg.OrgAccountID]
			if account.OrganizationID != leg.OrganizationID {
				return fmt.Errorf("%w: organization account %s does not belong to organization %s", apperrors.ErrValidation, account.OrgAccountID, leg.OrganizationID)
			}

			delta, err := ledger.SignedAmount(leg.Type, leg.Amount)
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
			}

			newBalance, err := ledger.NextBalance(account.Balance, delta, account.AllowOverdraft)
			if err != nil {
				return fmt.Errorf("organization account %s: %w", account.OrgAccountID, err)
			}
			leg.RunningBalance = &newBalance

			if err := r.orgAccounts.ApplyBalanceDeltaInTx(ctx, tx, account.OrgAccountID, delta, leg.CreatedBy, leg.LastUpdatedAt); err != nil {
				return err
			}
			if err := insertTransactionInTx(ctx, tx, toModelTransaction(*leg)); err != nil {
				return err
			}
		}

		return r.Commit(ctx, tx)
	})
}

// SaveReversal appends the offsetting transaction and marks the original row
// REVERSED, linking the two. The original is claimed with a conditional update
// so that of two racing reversals exactly one wins.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string) error {
	return withContentionRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = r.Rollback(ctx, tx) }()

		claim := `
			UPDATE transactions
			SET status = $2, reversing_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
			WHERE transaction_id = $1 AND reversing_transaction_id IS NULL;
		`
		cmdTag, err := tx.Exec(ctx, claim,
			originalID,
			string(domain.TxnReversed),
			reversal.TransactionID,
			reversal.LastUpdatedAt,
			reversal.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark transaction "+originalID+" reversed", err)
		}
		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`, originalID).Scan(&exists); err != nil {
				return apperrors.NewAppError(500, "failed to check transaction "+originalID, err)
			}
			if !exists {
				return fmt.Errorf("%w: transaction %s not found", apperrors.ErrNotFound, originalID)
			}
			return fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, originalID)
		}

		if err := r.applyPostingInTx(ctx, tx, &reversal); err != nil {
			return err
		}
		if err := insertTransactionInTx(ctx, tx, toModelTransaction(reversal)); err != nil {
			return err
		}

		return r.Commit(ctx, tx)
	})
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// FindTransactionsByTransferID retrieves both legs of a fund transfer.
func (r *PgxTransactionRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transfer_id = $1 ORDER BY transaction_id;`

	rows, err := r.Pool.Query(ctx, query, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for transfer "+transferID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for transfer "+transferID, err)
		}
		txns = append(txns, toDomainTransaction(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for transfer "+transferID, err)
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: no transactions for transfer %s", apperrors.ErrNotFound, transferID)
	}
	return txns, nil
}

// ListTransactionsByChartAccount retrieves a page of postings against a chart
// of accounts entry, newest first, keyed by an opaque cursor token.
func (r *PgxTransactionRepository) ListTransactionsByChartAccount(ctx context.Context, organizationID string, chartOfAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{organizationID, chartOfAccountID}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND chart_of_account_id = $2
	`

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, transaction_id) < ($3, $4)`
		args = append(args, cursorTime, cursorID)
	}

	// Fetch one extra row to decide whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+chartOfAccountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+chartOfAccountID, err)
		}
		txns = append(txns, toDomainTransaction(m))
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+chartOfAccountID, err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		encoded := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		token = &encoded
	}

	return txns, token, nil
}
