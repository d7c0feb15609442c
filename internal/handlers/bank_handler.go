package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kasatakip/internal/models"
	"kasatakip/internal/services"
)

// BankHandler serves banks and the caller's bank accounts.
type BankHandler struct {
	bankService        services.BankServicer
	bankAccountService services.BankAccountServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankServicer, bankAccountService services.BankAccountServicer) *BankHandler {
	return &BankHandler{bankService: bankService, bankAccountService: bankAccountService}
}

// BankRequest is the payload for creating or renaming a bank.
type BankRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Version int64  `json:"version" binding:"omitempty,min=1"`
}

// BankAccountRequest is the payload for creating or updating a bank account.
type BankAccountRequest struct {
	BankID        string                 `json:"bank_id" binding:"required"`
	AccountName   string                 `json:"account_name" binding:"required,max=100"`
	IBAN          string                 `json:"iban" binding:"omitempty,iban"`
	BranchCode    string                 `json:"branch_code" binding:"max=10"`
	AccountNumber string                 `json:"account_number" binding:"max=20"`
	CurrencyID    string                 `json:"currency_id" binding:"required"`
	AccountType   models.BankAccountType `json:"account_type" binding:"omitempty,bank_account_type"`
	Notes         string                 `json:"notes" binding:"max=250"`
	Version       int64                  `json:"version" binding:"omitempty,min=1"`
}

func (r BankAccountRequest) input() services.BankAccountInput {
	return services.BankAccountInput{
		BankID:        r.BankID,
		AccountName:   r.AccountName,
		IBAN:          r.IBAN,
		BranchCode:    r.BranchCode,
		AccountNumber: r.AccountNumber,
		CurrencyID:    r.CurrencyID,
		AccountType:   r.AccountType,
		Notes:         r.Notes,
	}
}

// CreateBank adds a bank
// @Summary     Create a bank
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BankRequest true "Bank"
// @Success     201 {object} models.Bank
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate name"
// @Router      /banks [post]
func (h *BankHandler) CreateBank(c *gin.Context) {
	var req BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	bank, err := h.bankService.CreateBank(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bank": bank})
}

// ListBanks returns every bank
// @Summary     List banks
// @Tags        banks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Bank
// @Router      /banks [get]
func (h *BankHandler) ListBanks(c *gin.Context) {
	banks, err := h.bankService.ListBanks()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

// UpdateBank renames a bank
// @Summary     Rename a bank
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Bank ID"
// @Param       request body BankRequest true "Bank"
// @Success     200 {object} models.Bank
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /banks/{id} [put]
func (h *BankHandler) UpdateBank(c *gin.Context) {
	var req BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	bank, err := h.bankService.UpdateBank(c.Param("id"), req.Name, req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank": bank})
}

// DeleteBank removes a bank without accounts
// @Summary     Delete a bank
// @Tags        banks
// @Security    BearerAuth
// @Param       id path string true "Bank ID"
// @Success     204
// @Failure     409 {object} ErrorResponse "Bank in use"
// @Router      /banks/{id} [delete]
func (h *BankHandler) DeleteBank(c *gin.Context) {
	if err := h.bankService.DeleteBank(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateBankAccount adds a bank account for the caller
// @Summary     Create a bank account
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BankAccountRequest true "Bank account"
// @Success     201 {object} models.BankAccount
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /bank-accounts [post]
func (h *BankHandler) CreateBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bank_account": account})
}

// ListBankAccounts lists the caller's bank accounts
// @Summary     List bank accounts
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Matches account name, IBAN or bank name"
// @Success     200 {array} models.BankAccount
// @Router      /bank-accounts [get]
func (h *BankHandler) ListBankAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(userID, c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_accounts": accounts})
}

// GetBankAccount returns one of the caller's bank accounts
// @Summary     Get a bank account
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bank account ID"
// @Success     200 {object} models.BankAccount
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Router      /bank-accounts/{id} [get]
func (h *BankHandler) GetBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.bankAccountService.GetBankAccount(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}

// UpdateBankAccount replaces a bank account's fields
// @Summary     Update a bank account
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Bank account ID"
// @Param       request body BankAccountRequest true "Bank account"
// @Success     200 {object} models.BankAccount
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /bank-accounts/{id} [put]
func (h *BankHandler) UpdateBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(userID, c.Param("id"), req.input(), req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}

// DeleteBankAccount removes a bank account
// @Summary     Delete a bank account
// @Tags        bank-accounts
// @Security    BearerAuth
// @Param       id path string true "Bank account ID"
// @Success     204
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Router      /bank-accounts/{id} [delete]
func (h *BankHandler) DeleteBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
