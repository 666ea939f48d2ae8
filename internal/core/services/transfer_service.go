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
)

// System chart-of-account code that transfer legs post against. Seeded for
// every organization at bootstrap.
const transferChartAccountCode = "SYS-ASSET"

// TransferService moves funds between two organization accounts atomically.
// A transfer is two ledger transactions, a TRANSFER_OUT on the source and a
// TRANSFER_IN on the destination, sharing a TransferID and committed together.
type TransferService struct {
	transactionRepo  portsrepo.TransactionRepositoryFacade
	chartAccountRepo portsrepo.ChartOfAccountReader
	orgAccountRepo   portsrepo.OrgAccountReader
}

// NewTransferService creates a new TransferService.
func NewTransferService(tr portsrepo.TransactionRepositoryFacade, cr portsrepo.ChartOfAccountReader, oar portsrepo.OrgAccountReader) portssvc.TransferSvcFacade {
	return &TransferService{
		transactionRepo:  tr,
		chartAccountRepo: cr,
		orgAccountRepo:   oar,
	}
}

var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// TransferFunds validates and executes a fund transfer. Both balance
// mutations commit or neither does; a failed destination credit can never
// leave the source debited.
func (s *TransferService) TransferFunds(ctx context.Context, organizationID string, req dto.TransferFundsRequest, userID string) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be strictly positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer from an account to itself", apperrors.ErrConflict)
	}

	for _, id := range []string{req.FromAccountID, req.ToAccountID} {
		account, err := s.orgAccountRepo.FindOrgAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: organization account %s not found", apperrors.ErrValidation, id)
			}
			return nil, fmt.Errorf("failed to validate organization account %s: %w", id, err)
		}
		if account.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: organization account %s does not belong to organization %s", apperrors.ErrValidation, id, organizationID)
		}
	}

	chartAccount, err := s.chartAccountRepo.FindChartAccountByCode(ctx, organizationID, transferChartAccountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transfer ledger account for organization %s: %w", organizationID, err)
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	debit := domain.Transaction{
		TransactionID:    uuid.NewString(),
		OrganizationID:   organizationID,
		ChartOfAccountID: chartAccount.AccountID,
		OrgAccountID:     &req.FromAccountID,
		TransferID:       &transferID,
		Type:             domain.TxnTransferOut,
		Amount:           req.Amount,
		Comments:         req.Comments,
		Status:           domain.TxnPosted,
		TransactionDate:  now,
		AuditFields:      audit,
	}
	credit := domain.Transaction{
		TransactionID:    uuid.NewString(),
		OrganizationID:   organizationID,
		ChartOfAccountID: chartAccount.AccountID,
		OrgAccountID:     &req.ToAccountID,
		TransferID:       &transferID,
		Type:             domain.TxnTransferIn,
		Amount:           req.Amount,
		Comments:         req.Comments,
		Status:           domain.TxnPosted,
		TransactionDate:  now,
		AuditFields:      audit,
	}

	if err := s.transactionRepo.SaveTransferPair(ctx, debit, credit); err != nil {
		logger.Error("Failed to execute fund transfer",
			slog.String("error", err.Error()),
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID),
			slog.String("amount", req.Amount.String()))
		return nil, fmt.Errorf("failed to transfer funds: %w", err)
	}

	legs, err := s.transactionRepo.FindTransactionsByTransferID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back transfer %s: %w", transferID, err)
	}

	resp := &dto.TransferResponse{TransferID: transferID}
	for i := range legs {
		switch legs[i].Type {
		case domain.TxnTransferOut:
			resp.Debit = dto.ToTransactionResponse(&legs[i])
		case domain.TxnTransferIn:
			resp.Credit = dto.ToTransactionResponse(&legs[i])
		}
	}

	logger.Info("Funds transferred",
		slog.String("transfer_id", transferID),
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.String()))
	return resp, nil
}
