package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kasatakip/internal/services"
)

// CurrencyHandler handles currency reference data.
type CurrencyHandler struct {
	currencyService services.CurrencyServicer
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyService services.CurrencyServicer) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// CurrencyRequest is the payload for creating or updating a currency.
type CurrencyRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Symbol  string `json:"symbol" binding:"required,max=5"`
	Version int64  `json:"version" binding:"omitempty,min=1"`
}

// CreateCurrency handles the creation of a currency
// @Summary     Create a currency
// @Tags        currencies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CurrencyRequest true "Currency"
// @Success     201 {object} models.Currency
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /currencies [post]
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	currency, err := h.currencyService.CreateCurrency(req.Name, req.Symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"currency": currency})
}

// ListCurrencies returns every currency ordered by name
// @Summary     List currencies
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Currency
// @Router      /currencies [get]
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// GetCurrency returns one currency
// @Summary     Get currency
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Currency ID"
// @Success     200 {object} models.Currency
// @Failure     404 {object} ErrorResponse "Currency not found"
// @Router      /currencies/{id} [get]
func (h *CurrencyHandler) GetCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}

// UpdateCurrency renames a currency or changes its symbol
// @Summary     Update currency
// @Tags        currencies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Currency ID"
// @Param       request body CurrencyRequest true "Currency"
// @Success     200 {object} models.Currency
// @Failure     404 {object} ErrorResponse "Currency not found"
// @Failure     409 {object} ErrorResponse "Concurrency conflict"
// @Router      /currencies/{id} [put]
func (h *CurrencyHandler) UpdateCurrency(c *gin.Context) {
	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Param("id"), req.Name, req.Symbol, req.Version)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}

// DeleteCurrency removes an unused currency
// @Summary     Delete currency
// @Tags        currencies
// @Security    BearerAuth
// @Param       id path string true "Currency ID"
// @Success     204
// @Failure     409 {object} ErrorResponse "Currency in use"
// @Router      /currencies/{id} [delete]
func (h *CurrencyHandler) DeleteCurrency(c *gin.Context) {
	if err := h.currencyService.DeleteCurrency(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
