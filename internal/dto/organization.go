package dto

import (
	"time"

	"github.com/propfolio/realty_ledger/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToOrganizationResponse converts a domain.Organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		Description:    org.Description,
		IsActive:       org.IsActive,
		CreatedAt:      org.CreatedAt,
		CreatedBy:      org.CreatedBy,
	}
}
