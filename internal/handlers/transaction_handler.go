package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/services"
)

// TransactionHandler handles ledger entries.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	selectionService   services.SelectionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, selectionService services.SelectionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, selectionService: selectionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// SafeID defaults to the safe selected for the session.
type CreateTransactionRequest struct {
	SafeID           string                 `json:"safe_id"`
	Type             models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount           decimal.Decimal        `json:"amount" swaggertype:"string" example:"150.00"`
	CurrencyID       string                 `json:"currency_id" binding:"required"`
	Description      string                 `json:"description" binding:"required,max=200"`
	Date             *string                `json:"date"`
	PayeeOrPayer     string                 `json:"payee_or_payer" binding:"max=100"`
	CurrentAccountID *string                `json:"current_account_id"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	SafeID              *string          `json:"safe_id"`
	Amount              *decimal.Decimal `json:"amount" swaggertype:"string"`
	CurrencyID          *string          `json:"currency_id"`
	Description         *string          `json:"description" binding:"omitempty,max=200"`
	Date                *string          `json:"date"`
	PayeeOrPayer        *string          `json:"payee_or_payer" binding:"omitempty,max=100"`
	CurrentAccountID    *string          `json:"current_account_id"`
	ClearCurrentAccount bool             `json:"clear_current_account"`
	Version             int64            `json:"version" binding:"omitempty,min=1"`
}

// CreateTransaction records an income or expense in a safe
// @Summary     Create a transaction
// @Description Record an income or expense. Without safe_id the session's selected safe is used.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	date, err := optionalTime(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	safeID, err := resolveSafeID(c, h.selectionService, userID, req.SafeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in := services.TransactionInput{
		SafeID:           safeID,
		Type:             req.Type,
		Amount:           req.Amount,
		CurrencyID:       req.CurrencyID,
		Description:      req.Description,
		PayeeOrPayer:     req.PayeeOrPayer,
		CurrentAccountID: req.CurrentAccountID,
	}
	if date != nil {
		in.Date = *date
	}

	transaction, err := h.transactionService.AddTransaction(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions lists the transactions of a safe, newest first
// @Summary     List transactions
// @Description Paginated transactions of safe_id, or of the selected safe when omitted
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       safe_id     query string false "Safe ID (defaults to the selected safe)"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 25, max 200)"
// @Param       from_date   query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date     query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       type        query string false "income or expense"
// @Param       currency_id query string false "Filter by currency"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	h.listTransactions(c, c.Query("safe_id"))
}

// GetSafeTransactions lists the transactions of one safe
// @Summary     Safe transactions
// @Tags        safes,transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Safe ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 25, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Router      /safes/{id}/transactions [get]
func (h *TransactionHandler) GetSafeTransactions(c *gin.Context) {
	h.listTransactions(c, c.Param("id"))
}

func (h *TransactionHandler) listTransactions(c *gin.Context, explicitSafeID string) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	safeID, err := resolveSafeID(c, h.selectionService, userID, explicitSafeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetSafeTransactions(userID, safeID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error

	if filter.FromDate, err = queryTime(c, "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = queryTime(c, "to_date"); err != nil {
		return filter, err
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if !txType.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
		}
		filter.Type = &txType
	}

	filter.CurrencyID = optionalQuery(c, "currency_id")
	return filter, nil
}

// GetTransactionByID returns one transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction edits a transaction
// @Summary     Update transaction
// @Description Partial update. Send the version you read to detect concurrent edits.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	date, err := optionalTime(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), services.TransactionUpdateFields{
		SafeID:              req.SafeID,
		Amount:              req.Amount,
		CurrencyID:          req.CurrencyID,
		Description:         req.Description,
		Date:                date,
		PayeeOrPayer:        req.PayeeOrPayer,
		CurrentAccountID:    req.CurrentAccountID,
		ClearCurrentAccount: req.ClearCurrentAccount,
		Version:             req.Version,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction and whatever composite operation it belongs to
// @Summary     Delete transaction
// @Description Deleting one leg of an exchange removes the other leg and the exchange; deleting a salary entry removes the payment.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.CascadeResult "What was removed"
// @Failure     403 {object} ErrorResponse "No access"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Rolled back"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.DeleteTransaction(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
