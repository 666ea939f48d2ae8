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

// accountGroupHandler handles HTTP requests related to account groups.
type accountGroupHandler struct {
	accountGroupService portssvc.AccountGroupSvcFacade
}

func newAccountGroupHandler(gs portssvc.AccountGroupSvcFacade) *accountGroupHandler {
	return &accountGroupHandler{accountGroupService: gs}
}

// registerAccountGroupRoutes registers routes related to account groups.
func registerAccountGroupRoutes(rg *gin.RouterGroup, accountGroupService portssvc.AccountGroupSvcFacade) {
	h := newAccountGroupHandler(accountGroupService)

	groups := rg.Group("/account-groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.PATCH("/:groupID", h.renameGroup)
	}
}

// createGroup godoc
// @Summary Create a new account group
// @Description Creates a classification bucket for chart-of-account entries
// @Tags account-groups
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   group body dto.CreateAccountGroupRequest true "Account group details"
// @Success 201 {object} dto.AccountGroupResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate group"
// @Security BearerAuth
// @Router /organizations/{orgID}/account-groups [post]
func (h *accountGroupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreateAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.accountGroupService.CreateGroup(c.Request.Context(), orgID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account group", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account group"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountGroupResponse(group))
}

// listGroups godoc
// @Summary List account groups
// @Description Lists the organization's account groups, optionally filtered by classification
// @Tags account-groups
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountType query string false "Filter by classification (ASSET, LIABILITY, EQUITY, INCOME, EXPENSE)"
// @Success 200 {array} dto.AccountGroupResponse
// @Failure 400 {object} map[string]string "Invalid classification filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations/{orgID}/account-groups [get]
func (h *accountGroupHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.ListAccountGroupsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	groups, err := h.accountGroupService.ListGroups(c.Request.Context(), orgID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list account groups", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account groups"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountGroupResponses(groups))
}

// renameGroup godoc
// @Summary Rename an account group
// @Description Updates a group's display name; the classification is immutable
// @Tags account-groups
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   groupID path string true "Account Group ID"
// @Param   group body dto.RenameAccountGroupRequest true "New name"
// @Success 200 {object} dto.AccountGroupResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/account-groups/{groupID} [patch]
func (h *accountGroupHandler) renameGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	groupID := c.Param("groupID")

	var req dto.RenameAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.accountGroupService.RenameGroup(c.Request.Context(), orgID, groupID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account group not found"})
		} else {
			logger.Error("Failed to rename account group", slog.String("error", err.Error()), slog.String("group_id", groupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename account group"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountGroupResponse(group))
}
