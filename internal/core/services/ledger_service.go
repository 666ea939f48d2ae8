package services

import (
	"context"
	"errors"
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
	"github.com/propfolio/realty_ledger/internal/utils/ledger"
)

// LedgerService handles the append-only transaction ledger: posting,
// reversal and history reads. Rows are never edited or deleted after commit;
// every correction is a new offsetting transaction.
type LedgerService struct {
	transactionRepo  portsrepo.TransactionRepositoryFacade
	chartAccountRepo portsrepo.ChartOfAccountReader
	orgAccountRepo   portsrepo.OrgAccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(tr portsrepo.TransactionRepositoryFacade, cr portsrepo.ChartOfAccountReader, oar portsrepo.OrgAccountReader) portssvc.LedgerSvcFacade {
	return &LedgerService{
		transactionRepo:  tr,
		chartAccountRepo: cr,
		orgAccountRepo:   oar,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// validatePostingTarget confirms the chart-of-account entry exists, belongs to
// the organization and accepts new postings.
func (s *LedgerService) validatePostingTarget(ctx context.Context, organizationID string, chartOfAccountID string) (*domain.ChartOfAccount, error) {
	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, chartOfAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, chartOfAccountID)
		}
		return nil, fmt.Errorf("failed to validate account %s: %w", chartOfAccountID, err)
	}
	if account.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: account %s does not belong to organization %s", apperrors.ErrValidation, chartOfAccountID, organizationID)
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrAccountInactive, account.Code)
	}
	return account, nil
}

// PostTransaction appends a new transaction to the ledger. When the posting is
// linked to an organization account, the signed amount is applied to that
// account's balance in the same database transaction.
func (s *LedgerService) PostTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be strictly positive", apperrors.ErrValidation)
	}
	// Transfer legs carry pairing semantics; they are only created through the
	// transfer service, never posted individually.
	if txnType == domain.TxnTransferIn || txnType == domain.TxnTransferOut {
		return nil, fmt.Errorf("%w: transfer legs cannot be posted directly, use the transfer operation", apperrors.ErrValidation)
	}

	if _, err := s.validatePostingTarget(ctx, organizationID, req.ChartOfAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = req.TransactionDate.UTC()
	}

	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		OrganizationID:   organizationID,
		ChartOfAccountID: req.ChartOfAccountID,
		OrgAccountID:     req.OrgAccountID,
		Type:             txnType,
		Amount:           req.Amount,
		Comments:         req.Comments,
		ProjectID:        req.ProjectID,
		CustomerID:       req.CustomerID,
		UnitID:           req.UnitID,
		Status:           domain.TxnPosted,
		TransactionDate:  txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to post transaction",
			slog.String("error", err.Error()),
			slog.String("chart_of_account_id", req.ChartOfAccountID),
			slog.String("type", string(txnType)))
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	saved, err := s.transactionRepo.FindTransactionByID(ctx, txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back transaction %s: %w", txn.TransactionID, err)
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)),
		slog.String("amount", req.Amount.String()))
	return saved, nil
}

// ReverseTransaction creates the exact offsetting transaction for an earlier
// posting and marks the original REVERSED. Reversals of reversals are
// rejected; each posting can be reversed at most once.
func (s *LedgerService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, req dto.ReverseTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if original.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if original.Status == domain.TxnReversed || original.ReversingTransactionID != nil {
		return nil, fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, transactionID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: transaction %s is itself a reversal", apperrors.ErrConflict, transactionID)
	}

	inverseType, err := ledger.InverseType(original.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	reversal := domain.Transaction{
		TransactionID:         uuid.NewString(),
		OrganizationID:        organizationID,
		ChartOfAccountID:      original.ChartOfAccountID,
		OrgAccountID:          original.OrgAccountID,
		Type:                  inverseType,
		Amount:                original.Amount,
		Comments:              fmt.Sprintf("Reversal of %s: %s", original.TransactionID, req.Reason),
		ProjectID:             original.ProjectID,
		CustomerID:            original.CustomerID,
		UnitID:                original.UnitID,
		Status:                domain.TxnPosted,
		TransactionDate:       now,
		OriginalTransactionID: &original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveReversal(ctx, reversal, original.TransactionID); err != nil {
		logger.Error("Failed to reverse transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to reverse transaction %s: %w", transactionID, err)
	}

	saved, err := s.transactionRepo.FindTransactionByID(ctx, reversal.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back reversal %s: %w", reversal.TransactionID, err)
	}

	logger.Info("Transaction reversed",
		slog.String("original_transaction_id", transactionID),
		slog.String("reversal_transaction_id", reversal.TransactionID))
	return saved, nil
}

// GetTransactionByID retrieves a transaction scoped to the organization.
func (s *LedgerService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if txn.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListAccountTransactions returns a cursor-paginated posting history for a
// chart-of-account entry, newest first.
func (s *LedgerService) ListAccountTransactions(ctx context.Context, organizationID string, chartOfAccountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, chartOfAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", chartOfAccountID, err)
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByChartAccount(ctx, organizationID, chartOfAccountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", chartOfAccountID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
