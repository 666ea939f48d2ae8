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

// chartAccountHandler handles HTTP requests related to the chart of accounts.
type chartAccountHandler struct {
	chartAccountService portssvc.ChartOfAccountSvcFacade
	ledgerService       portssvc.LedgerSvcFacade
}

func newChartAccountHandler(cs portssvc.ChartOfAccountSvcFacade, ls portssvc.LedgerSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{
		chartAccountService: cs,
		ledgerService:       ls,
	}
}

// registerChartAccountRoutes registers routes related to the chart of accounts.
func registerChartAccountRoutes(rg *gin.RouterGroup, chartAccountService portssvc.ChartOfAccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newChartAccountHandler(chartAccountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/transactions", h.listAccountTransactions)
	}
}

// createAccount godoc
// @Summary Create a chart-of-account entry
// @Description Creates a new ledger account under an account group. The code must be unique among the organization's active entries
// @Tags chart-of-accounts
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   account body dto.CreateChartAccountRequest true "Account details"
// @Success 201 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Duplicate account code"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts [post]
func (h *chartAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.chartAccountService.CreateAccount(c.Request.Context(), orgID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create chart account", slog.String("error", err.Error()), slog.String("code", req.Code))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

// listAccounts godoc
// @Summary List chart-of-account entries
// @Description Lists the organization's ledger accounts with filtering, paging and sorting
// @Tags chart-of-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountGroupID query string false "Filter by account group"
// @Param   status query string false "Filter by status (ACTIVE, INACTIVE)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Page offset"
// @Param   sortBy query string false "Sort field (code, name, createdDate)"
// @Param   sortDir query string false "Sort direction (asc, desc)"
// @Success 200 {object} dto.ListChartAccountsResponse
// @Failure 400 {object} map[string]string "Invalid filter or sort parameter"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts [get]
func (h *chartAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.ListChartAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.chartAccountService.ListAccounts(c.Request.Context(), orgID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list chart accounts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListChartAccountsResponse{Accounts: dto.ToChartAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get a chart-of-account entry
// @Description Retrieves a single ledger account by its ID
// @Tags chart-of-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts/{accountID} [get]
func (h *chartAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	accountID := c.Param("accountID")

	account, err := h.chartAccountService.GetAccountByID(c.Request.Context(), orgID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get chart account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a chart-of-account entry
// @Description Marks an account INACTIVE so it rejects future postings. System accounts cannot be deactivated
// @Tags chart-of-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account already inactive or immutable"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts/{accountID} [delete]
func (h *chartAccountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.chartAccountService.DeactivateAccount(c.Request.Context(), orgID, accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrImmutableAccount) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate chart account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listAccountTransactions godoc
// @Summary List an account's posting history
// @Description Returns a cursor-paginated list of postings against the account, newest first
// @Tags chart-of-accounts
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid page token"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts/{accountID}/transactions [get]
func (h *chartAccountHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), orgID, accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list account transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
