package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kasatakip/internal/services"
)

// SafeHandler serves safes and the per-session safe selection.
type SafeHandler struct {
	safeService      services.SafeServicer
	selectionService services.SelectionServicer
}

// NewSafeHandler creates a new SafeHandler.
func NewSafeHandler(safeService services.SafeServicer, selectionService services.SelectionServicer) *SafeHandler {
	return &SafeHandler{safeService: safeService, selectionService: selectionService}
}

// SafeRequest is the payload for creating or renaming a safe.
type SafeRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Version int64  `json:"version" binding:"omitempty,min=1"`
}

// SelectSafeRequest picks the safe the session works on.
type SelectSafeRequest struct {
	SafeID string `json:"safe_id" binding:"required"`
}

// CreateSafe opens a new safe owned by the caller
// @Summary     Create a safe
// @Tags        safes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SafeRequest true "Safe"
// @Success     201 {object} models.Safe
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /safes [post]
func (h *SafeHandler) CreateSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	safe, err := h.safeService.CreateSafe(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"safe": safe})
}

// ListSafes returns owned safes and safes shared through an active grant
// @Summary     List accessible safes
// @Tags        safes
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.SafeSummary
// @Router      /safes [get]
func (h *SafeHandler) ListSafes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	safes, err := h.safeService.ListAccessibleSafes(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safes": safes})
}

// GetSafe returns one accessible safe
// @Summary     Get a safe
// @Tags        safes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Safe ID"
// @Success     200 {object} models.Safe
// @Failure     403 {object} ErrorResponse "No access"
// @Failure     404 {object} ErrorResponse "Safe not found"
// @Router      /safes/{id} [get]
func (h *SafeHandler) GetSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	safe, err := h.safeService.GetSafe(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe": safe})
}

// RenameSafe renames an owned safe
// @Summary     Rename a safe
// @Tags        safes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Safe ID"
// @Param       request body SafeRequest true "Safe"
// @Success     200 {object} models.Safe
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /safes/{id} [put]
func (h *SafeHandler) RenameSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	safe, err := h.safeService.RenameSafe(userID, c.Param("id"), req.Name, req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe": safe})
}

// DeleteSafe removes an owned safe with its transactions and grants
// @Summary     Delete a safe
// @Tags        safes
// @Security    BearerAuth
// @Param       id path string true "Safe ID"
// @Success     204
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     409 {object} ErrorResponse "Safe in use"
// @Router      /safes/{id} [delete]
func (h *SafeHandler) DeleteSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.safeService.DeleteSafe(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSafeBalances returns the balance of every currency in a safe
// @Summary     Safe balances
// @Tags        safes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Safe ID"
// @Success     200 {array} services.CurrencyBalance
// @Failure     403 {object} ErrorResponse "No access"
// @Router      /safes/{id}/balances [get]
func (h *SafeHandler) GetSafeBalances(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balances, err := h.safeService.GetSafeBalances(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe_id": c.Param("id"), "balances": balances})
}

// GetSelectedSafe returns the safe selected for this session, picking a default when needed
// @Summary     Current safe
// @Tags        session
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Safe
// @Failure     404 {object} ErrorResponse "No accessible safe"
// @Router      /session/safe [get]
func (h *SafeHandler) GetSelectedSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionID, err := getSessionID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	safe, err := h.selectionService.Current(c.Request.Context(), sessionID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe": safe})
}

// SelectSafe switches the session to another accessible safe
// @Summary     Select safe
// @Tags        session
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SelectSafeRequest true "Safe to select"
// @Success     200 {object} models.Safe
// @Failure     403 {object} ErrorResponse "No access"
// @Router      /session/safe [put]
func (h *SafeHandler) SelectSafe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionID, err := getSessionID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SelectSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	safe, err := h.selectionService.Select(c.Request.Context(), sessionID, userID, req.SafeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe": safe})
}
