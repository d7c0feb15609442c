package services

import (
	"github.com/shopspring/decimal"

	"kasatakip/internal/models"
	"kasatakip/internal/money"
)

// CurrencyBalance is the net position in one currency.
type CurrencyBalance struct {
	CurrencyID       string          `json:"currency_id"`
	CurrencyName     string          `json:"currency_name"`
	Symbol           string          `json:"symbol"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
	Display          string          `json:"display"`
}

// Balances keeps the order of the currency list it was built from.
type Balances []CurrencyBalance

// Map returns the balances keyed by currency id.
func (b Balances) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b))
	for _, cb := range b {
		out[cb.CurrencyID] = cb.Balance
	}
	return out
}

// Find returns the balance of currencyID, if present.
func (b Balances) Find(currencyID string) (CurrencyBalance, bool) {
	for _, cb := range b {
		if cb.CurrencyID == currencyID {
			return cb, true
		}
	}
	return CurrencyBalance{}, false
}

// BalancesFor returns income minus expense per currency over exactly the
// given transactions, with one entry for every currency (the full view).
// Transactions in currencies missing from the list are ignored. No rounding
// is applied.
func BalancesFor(transactions []models.Transaction, currencies []models.Currency) Balances {
	return aggregate(transactions, currencies, false)
}

// NonTrivialBalances is BalancesFor without the currencies that have a zero
// balance and no transactions at all.
func NonTrivialBalances(transactions []models.Transaction, currencies []models.Currency) Balances {
	return aggregate(transactions, currencies, true)
}

func aggregate(transactions []models.Transaction, currencies []models.Currency, skipTrivial bool) Balances {
	idx := make(map[string]int, len(currencies))
	all := make(Balances, len(currencies))
	for i, c := range currencies {
		idx[c.ID] = i
		all[i] = CurrencyBalance{
			CurrencyID:   c.ID,
			CurrencyName: c.Name,
			Symbol:       c.Symbol,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
			Balance:      decimal.Zero,
		}
	}

	for _, t := range transactions {
		i, ok := idx[t.CurrencyID]
		if !ok {
			continue
		}
		cb := &all[i]
		switch t.Type {
		case models.TransactionTypeIncome:
			cb.Income = cb.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			cb.Expense = cb.Expense.Add(t.Amount)
		default:
			continue
		}
		cb.TransactionCount++
	}

	out := make(Balances, 0, len(all))
	for _, cb := range all {
		cb.Balance = cb.Income.Sub(cb.Expense)
		if skipTrivial && cb.Balance.IsZero() && cb.TransactionCount == 0 {
			continue
		}
		cb.Display = money.WithSymbol(cb.Balance, cb.Symbol)
		out = append(out, cb)
	}
	return out
}
