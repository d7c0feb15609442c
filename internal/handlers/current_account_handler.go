package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/services"
)

// CurrentAccountHandler handles counterparties.
type CurrentAccountHandler struct {
	currentAccountService services.CurrentAccountServicer
}

// NewCurrentAccountHandler creates a new CurrentAccountHandler.
func NewCurrentAccountHandler(currentAccountService services.CurrentAccountServicer) *CurrentAccountHandler {
	return &CurrentAccountHandler{currentAccountService: currentAccountService}
}

// CurrentAccountRequest is the payload for creating or updating a counterparty.
type CurrentAccountRequest struct {
	Name           string                  `json:"name" binding:"required,max=150"`
	Type           models.CounterpartyType `json:"type" binding:"omitempty,counterparty_type"`
	TaxNumber      string                  `json:"tax_number" binding:"max=20"`
	IdentityNumber string                  `json:"identity_number" binding:"max=11"`
	Address        string                  `json:"address" binding:"max=500"`
	Phone          string                  `json:"phone" binding:"max=20"`
	Email          string                  `json:"email" binding:"omitempty,email,max=100"`
	Notes          string                  `json:"notes" binding:"max=250"`
	Version        int64                   `json:"version" binding:"omitempty,min=1"`
}

func (r CurrentAccountRequest) input() services.CurrentAccountInput {
	return services.CurrentAccountInput{
		Name:           r.Name,
		Type:           r.Type,
		TaxNumber:      r.TaxNumber,
		IdentityNumber: r.IdentityNumber,
		Address:        r.Address,
		Phone:          r.Phone,
		Email:          r.Email,
		Notes:          r.Notes,
	}
}

// CreateCurrentAccount adds a counterparty
// @Summary     Create a current account
// @Tags        current-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CurrentAccountRequest true "Current account"
// @Success     201 {object} models.CurrentAccount
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /current-accounts [post]
func (h *CurrentAccountHandler) CreateCurrentAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CurrentAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	account, err := h.currentAccountService.CreateCurrentAccount(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"current_account": account})
}

// ListCurrentAccounts lists counterparties with their balances
// @Summary     List current accounts
// @Tags        current-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Matches name, tax number, phone or email"
// @Param       type   query string false "customer, vendor or other"
// @Success     200 {array} services.CurrentAccountSummary
// @Router      /current-accounts [get]
func (h *CurrentAccountHandler) ListCurrentAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var accountType *models.CounterpartyType
	if v := c.Query("type"); v != "" {
		t := models.CounterpartyType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be customer, vendor or other"))
			return
		}
		accountType = &t
	}

	accounts, err := h.currentAccountService.ListCurrentAccounts(userID, c.Query("search"), accountType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_accounts": accounts})
}

// GetCurrentAccount returns a counterparty with its balances
// @Summary     Get a current account
// @Tags        current-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Current account ID"
// @Success     200 {object} services.CurrentAccountSummary
// @Failure     404 {object} ErrorResponse "Current account not found"
// @Router      /current-accounts/{id} [get]
func (h *CurrentAccountHandler) GetCurrentAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.currentAccountService.GetCurrentAccount(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_account": account})
}

// UpdateCurrentAccount replaces a counterparty's fields
// @Summary     Update a current account
// @Description Renaming also renames the payee of its linked transactions.
// @Tags        current-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Current account ID"
// @Param       request body CurrentAccountRequest true "Current account"
// @Success     200 {object} models.CurrentAccount
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /current-accounts/{id} [put]
func (h *CurrentAccountHandler) UpdateCurrentAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CurrentAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	account, err := h.currentAccountService.UpdateCurrentAccount(userID, c.Param("id"), req.input(), req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_account": account})
}

// DeleteCurrentAccount removes a counterparty without transactions
// @Summary     Delete a current account
// @Tags        current-accounts
// @Security    BearerAuth
// @Param       id path string true "Current account ID"
// @Success     204
// @Failure     409 {object} ErrorResponse "Current account in use"
// @Router      /current-accounts/{id} [delete]
func (h *CurrentAccountHandler) DeleteCurrentAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.currentAccountService.DeleteCurrentAccount(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
