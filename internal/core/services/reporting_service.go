package services

import (
	"context"
	"fmt"
	"time"

	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
)

// ReportingService serves the read-only analytics queries over the ledger.
// It never mutates state.
type ReportingService struct {
	reportingRepo portsrepo.ReportingReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(rr portsrepo.ReportingReader) portssvc.ReportingSvcFacade {
	return &ReportingService{reportingRepo: rr}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// QueryByDateRange returns the organization's ledger activity inside the
// inclusive date window, optionally filtered by type and account.
func (s *ReportingService) QueryByDateRange(ctx context.Context, organizationID string, params dto.QueryByDateRangeParams) (*dto.QueryByDateRangeResponse, error) {
	if params.StartDate.After(params.EndDate) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}

	query := portsrepo.ReportingQuery{
		StartDate:        params.StartDate,
		EndDate:          params.EndDate.AddDate(0, 0, 1).Add(-time.Nanosecond), // Inclusive end of day
		ChartOfAccountID: params.ChartOfAccountID,
		Limit:            params.Limit,
		NextToken:        params.NextToken,
	}
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 20
	}
	if params.Type != nil && *params.Type != "" {
		parsed, err := domain.ParseTransactionType(*params.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query.TransactionType = &parsed
	}

	projections, nextToken, err := s.reportingRepo.QueryTransactionsByDateRange(ctx, organizationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger activity for %s: %w", organizationID, err)
	}

	return &dto.QueryByDateRangeResponse{
		Transactions: dto.ToProjectionResponses(projections),
		NextToken:    nextToken,
	}, nil
}
