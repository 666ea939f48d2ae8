package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// CreateAccountGroupRequest defines the data needed to create an account group.
// AccountType is re-validated against the closed enumeration in the service.
type CreateAccountGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}

// RenameAccountGroupRequest defines the only mutation allowed on a referenced group.
type RenameAccountGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListAccountGroupsParams defines query parameters for listing groups.
type ListAccountGroupsParams struct {
	AccountType *string `form:"accountType"`
}

// AccountGroupResponse defines the data returned for an account group.
type AccountGroupResponse struct {
	GroupID        string             `json:"groupID"`
	OrganizationID string             `json:"organizationID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountGroupResponse converts a domain.AccountGroup to its response DTO.
func ToAccountGroupResponse(g *domain.AccountGroup) AccountGroupResponse {
	return AccountGroupResponse{
		GroupID:        g.GroupID,
		OrganizationID: g.OrganizationID,
		Name:           g.Name,
		AccountType:    g.AccountType,
		CreatedAt:      g.CreatedAt,
		CreatedBy:      g.CreatedBy,
		LastUpdatedAt:  g.LastUpdatedAt,
		LastUpdatedBy:  g.LastUpdatedBy,
	}
}

// ToAccountGroupResponses converts a slice of groups to response DTOs.
func ToAccountGroupResponses(groups []domain.AccountGroup) []AccountGroupResponse {
	res := make([]AccountGroupResponse, len(groups))
	for i := range groups {
		res[i] = ToAccountGroupResponse(&groups[i])
	}
	return res
}
