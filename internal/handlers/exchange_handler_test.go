package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/services"
)

type mockExchangeService struct {
	createExchangeFn  func(userID, safeID string, in services.ExchangeInput) (*services.ExchangeResult, error)
	getExchangeByIDFn func(userID, exchangeID string) (*models.CurrencyExchange, error)
	listExchangesFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CurrencyExchange], error)
}

func (m *mockExchangeService) CreateExchange(userID, safeID string, in services.ExchangeInput) (*services.ExchangeResult, error) {
	if m.createExchangeFn != nil {
		return m.createExchangeFn(userID, safeID, in)
	}
	return &services.ExchangeResult{}, nil
}

func (m *mockExchangeService) GetExchangeByID(userID, exchangeID string) (*models.CurrencyExchange, error) {
	if m.getExchangeByIDFn != nil {
		return m.getExchangeByIDFn(userID, exchangeID)
	}
	return &models.CurrencyExchange{Base: models.Base{ID: exchangeID}}, nil
}

func (m *mockExchangeService) ListExchanges(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CurrencyExchange], error) {
	if m.listExchangesFn != nil {
		return m.listExchangesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.CurrencyExchange{}, 1, 25, 0)
	return &resp, nil
}

var _ services.ExchangeServicer = (*mockExchangeService)(nil)

func setupExchangeRouter(handler *ExchangeHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/exchanges", handler.CreateExchange)
	auth.GET("/exchanges", handler.ListExchanges)
	auth.GET("/exchanges/:id", handler.GetExchange)
	return r
}

func TestExchangeHandler_CreateExchange(t *testing.T) {
	t.Run("defaults sources to cash and uses the selected safe", func(t *testing.T) {
		var gotSafe string
		var got services.ExchangeInput
		svc := &mockExchangeService{
			createExchangeFn: func(_, safeID string, in services.ExchangeInput) (*services.ExchangeResult, error) {
				gotSafe, got = safeID, in
				return &services.ExchangeResult{
					Exchange: &models.CurrencyExchange{Base: models.Base{ID: "ex-1"}},
					Expense:  &models.Transaction{Base: models.Base{ID: "tx-out"}},
					Income:   &models.Transaction{Base: models.Base{ID: "tx-in"}},
				}, nil
			},
		}
		r := setupExchangeRouter(NewExchangeHandler(svc, &mockSelectionService{}))

		rec := doRequest(r, "POST", "/exchanges",
			`{"sold_currency_id":"usd","sold_amount":"100","bought_currency_id":"try","bought_amount":"3000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSafe != "selected-safe" {
			t.Errorf("expected selected-safe, got %q", gotSafe)
		}
		if got.SoldAccountSource != models.AccountSourceCash || got.BoughtAccountSource != models.AccountSourceCash {
			t.Errorf("expected cash sources, got %s/%s", got.SoldAccountSource, got.BoughtAccountSource)
		}
		if !got.BoughtAmount.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected 3000, got %s", got.BoughtAmount)
		}
		result := parseJSON(t, rec)
		if result["expense_transaction"].(map[string]interface{})["id"] != "tx-out" {
			t.Error("expected the expense leg in the response")
		}
	})

	t.Run("rejects unknown account source", func(t *testing.T) {
		r := setupExchangeRouter(NewExchangeHandler(&mockExchangeService{}, &mockSelectionService{}))

		rec := doRequest(r, "POST", "/exchanges",
			`{"sold_currency_id":"usd","sold_amount":1,"sold_account_source":"crypto","bought_currency_id":"try","bought_amount":30}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces same currency rejection", func(t *testing.T) {
		svc := &mockExchangeService{
			createExchangeFn: func(string, string, services.ExchangeInput) (*services.ExchangeResult, error) {
				return nil, apperrors.ErrSameCurrencyExchange
			},
		}
		r := setupExchangeRouter(NewExchangeHandler(svc, &mockSelectionService{}))

		rec := doRequest(r, "POST", "/exchanges",
			`{"sold_currency_id":"try","sold_amount":1,"bought_currency_id":"try","bought_amount":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SAME_CURRENCY_EXCHANGE")
	})
}

func TestExchangeHandler_GetExchange(t *testing.T) {
	svc := &mockExchangeService{
		getExchangeByIDFn: func(string, string) (*models.CurrencyExchange, error) {
			return nil, apperrors.ErrExchangeNotFound
		},
	}
	r := setupExchangeRouter(NewExchangeHandler(svc, &mockSelectionService{}))

	rec := doRequest(r, "GET", "/exchanges/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "EXCHANGE_NOT_FOUND")
}
