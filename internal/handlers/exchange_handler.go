package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/services"
)

// ExchangeHandler handles currency exchanges.
type ExchangeHandler struct {
	exchangeService  services.ExchangeServicer
	selectionService services.SelectionServicer
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeService services.ExchangeServicer, selectionService services.SelectionServicer) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService, selectionService: selectionService}
}

// CreateExchangeRequest converts money from one currency to another inside a safe.
type CreateExchangeRequest struct {
	SafeID              string               `json:"safe_id"`
	SoldCurrencyID      string               `json:"sold_currency_id" binding:"required"`
	SoldAmount          decimal.Decimal      `json:"sold_amount" swaggertype:"string" example:"100.00"`
	SoldAccountSource   models.AccountSource `json:"sold_account_source" binding:"omitempty,account_source"`
	BoughtCurrencyID    string               `json:"bought_currency_id" binding:"required"`
	BoughtAmount        decimal.Decimal      `json:"bought_amount" swaggertype:"string" example:"3000.00"`
	BoughtAccountSource models.AccountSource `json:"bought_account_source" binding:"omitempty,account_source"`
	ExchangeDate        *string              `json:"exchange_date"`
	CurrentAccountID    *string              `json:"current_account_id"`
	Description         string               `json:"description" binding:"max=200"`
}

// CreateExchange records an exchange as an expense leg, an income leg and a link row
// @Summary     Create a currency exchange
// @Description Both legs are written atomically. Only cash against the main safe is supported.
// @Tags        exchanges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExchangeRequest true "Exchange"
// @Success     201 {object} services.ExchangeResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "No access to the safe"
// @Failure     500 {object} ErrorResponse "Rolled back"
// @Router      /exchanges [post]
func (h *ExchangeHandler) CreateExchange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	date, err := optionalTime(req.ExchangeDate, "exchange_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	safeID, err := resolveSafeID(c, h.selectionService, userID, req.SafeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in := services.ExchangeInput{
		SoldCurrencyID:      req.SoldCurrencyID,
		SoldAmount:          req.SoldAmount,
		SoldAccountSource:   sourceOrCash(req.SoldAccountSource),
		BoughtCurrencyID:    req.BoughtCurrencyID,
		BoughtAmount:        req.BoughtAmount,
		BoughtAccountSource: sourceOrCash(req.BoughtAccountSource),
		CurrentAccountID:    req.CurrentAccountID,
		Description:         req.Description,
	}
	if date != nil {
		in.ExchangeDate = *date
	}

	result, err := h.exchangeService.CreateExchange(userID, safeID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func sourceOrCash(s models.AccountSource) models.AccountSource {
	if s == "" {
		return models.AccountSourceCash
	}
	return s
}

// ListExchanges lists the caller's exchanges, newest first
// @Summary     List currency exchanges
// @Tags        exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 25, max 200)"
// @Success     200 {object} pagination.PageResponse[models.CurrencyExchange]
// @Router      /exchanges [get]
func (h *ExchangeHandler) ListExchanges(c *gin.Context) {
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

	result, err := h.exchangeService.ListExchanges(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExchange returns one exchange
// @Summary     Get a currency exchange
// @Tags        exchanges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Exchange ID"
// @Success     200 {object} models.CurrencyExchange
// @Failure     404 {object} ErrorResponse "Exchange not found"
// @Router      /exchanges/{id} [get]
func (h *ExchangeHandler) GetExchange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	exchange, err := h.exchangeService.GetExchangeByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange": exchange})
}
