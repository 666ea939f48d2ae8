package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/middleware"
)

// orgAccountHandler handles HTTP requests related to organization accounts.
type orgAccountHandler struct {
	orgAccountService portssvc.OrgAccountSvcFacade
}

func newOrgAccountHandler(os portssvc.OrgAccountSvcFacade) *orgAccountHandler {
	return &orgAccountHandler{orgAccountService: os}
}

// registerOrgAccountRoutes registers routes related to organization accounts.
func registerOrgAccountRoutes(rg *gin.RouterGroup, orgAccountService portssvc.OrgAccountSvcFacade) {
	h := newOrgAccountHandler(orgAccountService)

	accounts := rg.Group("/org-accounts")
	{
		accounts.POST("", h.createOrgAccount)
		accounts.GET("", h.listOrgAccounts)
		accounts.GET("/:orgAccountID/balance", h.getBalance)
	}
}

// createOrgAccount godoc
// @Summary Create an organization account
// @Description Creates a balance-bearing CASH or BANK account for the organization
// @Tags org-accounts
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   account body dto.CreateOrgAccountRequest true "Account details"
// @Success 201 {object} dto.OrgAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /organizations/{orgID}/org-accounts [post]
func (h *orgAccountHandler) createOrgAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreateOrgAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrgAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.orgAccountService.CreateOrgAccount(c.Request.Context(), orgID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create organization account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrgAccountResponse(account))
}

// listOrgAccounts godoc
// @Summary List organization accounts
// @Description Lists the organization's balance-bearing accounts
// @Tags org-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.OrgAccountResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/org-accounts [get]
func (h *orgAccountHandler) listOrgAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	accounts, err := h.orgAccountService.ListOrgAccounts(c.Request.Context(), orgID)
	if err != nil {
		logger.Error("Failed to list organization accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organization accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrgAccountResponses(accounts))
}

// getBalance godoc
// @Summary Get an organization account balance
// @Description Returns the account's current balance with a read timestamp
// @Tags org-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   orgAccountID path string true "Organization Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/org-accounts/{orgAccountID}/balance [get]
func (h *orgAccountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	orgAccountID := c.Param("orgAccountID")

	balance, err := h.orgAccountService.GetBalance(c.Request.Context(), orgID, orgAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization account not found"})
		} else {
			logger.Error("Failed to get balance", slog.String("error", err.Error()), slog.String("org_account_id", orgAccountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, balance)
}
