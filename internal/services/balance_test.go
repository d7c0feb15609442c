package services

import (
	"testing"

	"kasatakip/internal/models"
	"kasatakip/internal/testutil"
)

func ledgerEntry(currencyID string, txType models.TransactionType, amount string) models.Transaction {
	return models.Transaction{CurrencyID: currencyID, Type: txType, Amount: testutil.Amount(amount)}
}

func TestBalancesFor(t *testing.T) {
	usd := models.Currency{Base: models.Base{ID: "usd"}, Name: "Dolar", Symbol: "$"}
	try := models.Currency{Base: models.Base{ID: "try"}, Name: "Türk Lirası", Symbol: "₺"}
	gbp := models.Currency{Base: models.Base{ID: "gbp"}, Name: "Sterlin", Symbol: "£"}
	currencies := []models.Currency{usd, try, gbp}

	t.Run("main_register_scenario", func(t *testing.T) {
		txs := []models.Transaction{
			ledgerEntry("usd", models.TransactionTypeIncome, "100"),
			ledgerEntry("usd", models.TransactionTypeExpense, "30"),
			ledgerEntry("try", models.TransactionTypeIncome, "50"),
		}

		got := BalancesFor(txs, currencies).Map()
		if !got["usd"].Equal(testutil.Amount("70")) {
			t.Errorf("expected USD 70, got %s", got["usd"])
		}
		if !got["try"].Equal(testutil.Amount("50")) {
			t.Errorf("expected TRY 50, got %s", got["try"])
		}
		if !got["gbp"].IsZero() {
			t.Errorf("expected GBP 0 in full view, got %s", got["gbp"])
		}
	})

	t.Run("non_trivial_omits_untouched_currencies", func(t *testing.T) {
		txs := []models.Transaction{
			ledgerEntry("usd", models.TransactionTypeIncome, "100"),
			ledgerEntry("usd", models.TransactionTypeExpense, "30"),
			ledgerEntry("try", models.TransactionTypeIncome, "50"),
		}

		got := NonTrivialBalances(txs, currencies)
		if len(got) != 2 {
			t.Fatalf("expected 2 balances, got %d", len(got))
		}
		if _, ok := got.Find("gbp"); ok {
			t.Error("expected GBP to be omitted")
		}
	})

	t.Run("zero_balance_with_activity_is_kept", func(t *testing.T) {
		txs := []models.Transaction{
			ledgerEntry("usd", models.TransactionTypeIncome, "40"),
			ledgerEntry("usd", models.TransactionTypeExpense, "40"),
		}

		got := NonTrivialBalances(txs, currencies)
		cb, ok := got.Find("usd")
		if !ok {
			t.Fatal("expected USD to be kept")
		}
		if !cb.Balance.IsZero() || cb.TransactionCount != 2 {
			t.Errorf("expected zero balance over 2 transactions, got %s over %d", cb.Balance, cb.TransactionCount)
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		full := BalancesFor(nil, currencies)
		if len(full) != len(currencies) {
			t.Fatalf("expected %d balances, got %d", len(currencies), len(full))
		}
		for _, cb := range full {
			if !cb.Balance.IsZero() {
				t.Errorf("expected zero for %s, got %s", cb.CurrencyID, cb.Balance)
			}
		}
		if got := NonTrivialBalances(nil, currencies); len(got) != 0 {
			t.Errorf("expected empty non-trivial view, got %d", len(got))
		}
	})

	t.Run("expense_only", func(t *testing.T) {
		txs := []models.Transaction{
			ledgerEntry("try", models.TransactionTypeExpense, "12.5"),
			ledgerEntry("try", models.TransactionTypeExpense, "7.25"),
		}

		cb, _ := BalancesFor(txs, currencies).Find("try")
		if !cb.Balance.Equal(testutil.Amount("-19.75")) {
			t.Errorf("expected -19.75, got %s", cb.Balance)
		}
		if !cb.Income.IsZero() {
			t.Errorf("expected no income, got %s", cb.Income)
		}
	})

	t.Run("full_precision_kept", func(t *testing.T) {
		txs := []models.Transaction{
			ledgerEntry("usd", models.TransactionTypeIncome, "0.005"),
			ledgerEntry("usd", models.TransactionTypeIncome, "0.005"),
		}

		cb, _ := BalancesFor(txs, currencies).Find("usd")
		if !cb.Balance.Equal(testutil.Amount("0.01")) {
			t.Errorf("expected 0.01, got %s", cb.Balance)
		}
	})

	t.Run("order_follows_currency_list", func(t *testing.T) {
		got := BalancesFor(nil, currencies)
		for i, c := range currencies {
			if got[i].CurrencyID != c.ID {
				t.Errorf("position %d: expected %s, got %s", i, c.ID, got[i].CurrencyID)
			}
		}
	})

	t.Run("display_uses_symbol", func(t *testing.T) {
		txs := []models.Transaction{ledgerEntry("try", models.TransactionTypeIncome, "1234.5")}

		cb, _ := BalancesFor(txs, currencies).Find("try")
		if cb.Display != "1.234,50 ₺" {
			t.Errorf("expected 1.234,50 ₺, got %q", cb.Display)
		}
	})
}
