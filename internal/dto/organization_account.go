package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrgAccountRequest defines the data needed to create an organization account.
type CreateOrgAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=CASH BANK"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	AllowOverdraft bool            `json:"allowOverdraft"`
}

// OrgAccountResponse defines the data returned for an organization account.
type OrgAccountResponse struct {
	OrgAccountID   string                `json:"orgAccountID"`
	OrganizationID string                `json:"organizationID"`
	Name           string                `json:"name"`
	Kind           domain.OrgAccountKind `json:"kind"`
	Balance        decimal.Decimal       `json:"balance"`
	AllowOverdraft bool                  `json:"allowOverdraft"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// BalanceResponse defines the data returned for a point-in-time balance read.
type BalanceResponse struct {
	OrgAccountID string          `json:"orgAccountID"`
	Balance      decimal.Decimal `json:"balance"`
	AsOf         time.Time       `json:"asOf"`
}

// ToOrgAccountResponse converts a domain.OrganizationAccount to its response DTO.
func ToOrgAccountResponse(a *domain.OrganizationAccount) OrgAccountResponse {
	return OrgAccountResponse{
		OrgAccountID:   a.OrgAccountID,
		OrganizationID: a.OrganizationID,
		Name:           a.Name,
		Kind:           a.Kind,
		Balance:        a.Balance,
		AllowOverdraft: a.AllowOverdraft,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastUpdatedAt:  a.LastUpdatedAt,
		LastUpdatedBy:  a.LastUpdatedBy,
	}
}

// ToOrgAccountResponses converts a slice of organization accounts to response DTOs.
func ToOrgAccountResponses(accounts []domain.OrganizationAccount) []OrgAccountResponse {
	res := make([]OrgAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToOrgAccountResponse(&accounts[i])
	}
	return res
}
