package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QueryByDateRangeParams defines query parameters for the analytics layer.
// Dates are inclusive; startDate after endDate is rejected.
type QueryByDateRangeParams struct {
	StartDate        time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate          time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
	Type             *string   `form:"type"`
	ChartOfAccountID *string   `form:"chartOfAccountID"`
	Limit            int       `form:"limit,default=20"`
	NextToken        *string   `form:"nextToken"`
}

// TransactionProjectionResponse is the reporting row returned to callers.
type TransactionProjectionResponse struct {
	TransactionID    string                   `json:"transactionID"`
	ChartOfAccountID string                   `json:"chartOfAccountID"`
	AccountCode      string                   `json:"accountCode"`
	AccountName      string                   `json:"accountName"`
	OrgAccountName   *string                  `json:"orgAccountName,omitempty"`
	Type             domain.TransactionType   `json:"type"`
	Amount           decimal.Decimal          `json:"amount"`
	Comments         string                   `json:"comments"`
	ProjectID        *string                  `json:"projectID,omitempty"`
	CustomerID       *string                  `json:"customerID,omitempty"`
	UnitID           *string                  `json:"unitID,omitempty"`
	Status           domain.TransactionStatus `json:"status"`
	TransactionDate  time.Time                `json:"transactionDate"`
	CreatedAt        time.Time                `json:"createdAt"`
	CreatedBy        string                   `json:"createdBy"`
}

// QueryByDateRangeResponse wraps a page of projections plus its cursor.
type QueryByDateRangeResponse struct {
	Transactions []TransactionProjectionResponse `json:"transactions"`
	NextToken    *string                         `json:"nextToken,omitempty"`
}

// ToProjectionResponse converts a domain projection to its response DTO.
func ToProjectionResponse(p *domain.TransactionProjection) TransactionProjectionResponse {
	return TransactionProjectionResponse{
		TransactionID:    p.TransactionID,
		ChartOfAccountID: p.ChartOfAccountID,
		AccountCode:      p.AccountCode,
		AccountName:      p.AccountName,
		OrgAccountName:   p.OrgAccountName,
		Type:             p.Type,
		Amount:           p.Amount,
		Comments:         p.Comments,
		ProjectID:        p.ProjectID,
		CustomerID:       p.CustomerID,
		UnitID:           p.UnitID,
		Status:           p.Status,
		TransactionDate:  p.TransactionDate,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ToProjectionResponses converts a slice of projections to response DTOs.
func ToProjectionResponses(projections []domain.TransactionProjection) []TransactionProjectionResponse {
	res := make([]TransactionProjectionResponse, len(projections))
	for i := range projections {
		res[i] = ToProjectionResponse(&projections[i])
	}
	return res
}
