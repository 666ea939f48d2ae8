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

// transferHandler handles HTTP requests related to fund transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to fund transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	rg.POST("/transfers", h.transferFunds)
}

// transferFunds godoc
// @Summary Transfer funds between organization accounts
// @Description Moves funds atomically between two organization accounts, recording a TRANSFER_OUT and TRANSFER_IN pair
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   transfer body dto.TransferFundsRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Insufficient funds"
// @Failure 503 {object} map[string]string "Concurrent contention, retry"
// @Security BearerAuth
// @Router /organizations/{orgID}/transfers [post]
func (h *transferHandler) transferFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.TransferFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferFunds", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transferService.TransferFunds(c.Request.Context(), orgID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrContention):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Transfer aborted due to concurrent activity, please retry"})
		default:
			logger.Error("Failed to transfer funds", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transfer funds"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}
