package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// CreateChartAccountRequest defines the data needed to create a chart-of-account
// entry. The optional ids are classification tags, not ownership.
type CreateChartAccountRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	AccountGroupID string  `json:"accountGroupID" binding:"required"`
	OrgAccountID   *string `json:"orgAccountID"`
	ProjectID      *string `json:"projectID"`
	UnitID         *string `json:"unitID"`
	CustomerID     *string `json:"customerID"`
	VendorID       *string `json:"vendorID"`
}

// ListChartAccountsParams defines query parameters for listing entries.
// SortBy is restricted to an allow-list; the service rejects anything else.
type ListChartAccountsParams struct {
	AccountGroupID *string `form:"accountGroupID"`
	Status         *string `form:"status"`
	Limit          int     `form:"limit,default=20"`
	Offset         int     `form:"offset,default=0"`
	SortBy         string  `form:"sortBy,default=code"`
	SortDir        string  `form:"sortDir,default=asc"`
}

// ChartAccountResponse defines the data returned for a chart-of-account entry.
type ChartAccountResponse struct {
	AccountID         string               `json:"accountID"`
	OrganizationID    string               `json:"organizationID"`
	Code              string               `json:"code"`
	Name              string               `json:"name"`
	AccountGroupID    string               `json:"accountGroupID"`
	IsSystemGenerated bool                 `json:"isSystemGenerated"`
	Status            domain.AccountStatus `json:"status"`
	OrgAccountID      *string              `json:"orgAccountID,omitempty"`
	ProjectID         *string              `json:"projectID,omitempty"`
	UnitID            *string              `json:"unitID,omitempty"`
	CustomerID        *string              `json:"customerID,omitempty"`
	VendorID          *string              `json:"vendorID,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy     string               `json:"lastUpdatedBy"`
}

// ListChartAccountsResponse wraps the list of entries.
type ListChartAccountsResponse struct {
	Accounts []ChartAccountResponse `json:"accounts"`
}

// ToChartAccountResponse converts a domain.ChartOfAccount to its response DTO.
func ToChartAccountResponse(a *domain.ChartOfAccount) ChartAccountResponse {
	return ChartAccountResponse{
		AccountID:         a.AccountID,
		OrganizationID:    a.OrganizationID,
		Code:              a.Code,
		Name:              a.Name,
		AccountGroupID:    a.AccountGroupID,
		IsSystemGenerated: a.IsSystemGenerated,
		Status:            a.Status,
		OrgAccountID:      a.OrgAccountID,
		ProjectID:         a.ProjectID,
		UnitID:            a.UnitID,
		CustomerID:        a.CustomerID,
		VendorID:          a.VendorID,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastUpdatedBy:     a.LastUpdatedBy,
	}
}

// ToChartAccountResponses converts a slice of entries to response DTOs.
func ToChartAccountResponses(accounts []domain.ChartOfAccount) []ChartAccountResponse {
	res := make([]ChartAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToChartAccountResponse(&accounts[i])
	}
	return res
}
