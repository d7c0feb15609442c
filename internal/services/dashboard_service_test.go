package services

import (
	"testing"
	"time"

	"kasatakip/internal/models"
	"kasatakip/internal/testutil"
)

func TestGetDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(db, NewAccessService(db))
	user := testutil.CreateTestUser(t, db)
	usd := testutil.CreateTestCurrency(t, db, "Dolar", "$")
	try := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
	safe := testutil.CreateTestSafe(t, db, user.ID, "Ana Kasa")
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	testutil.CreateTestTransactionAt(t, db, user.ID, safe.ID, usd.ID, models.TransactionTypeIncome, "500", now.AddDate(0, -1, 0))
	for i := 0; i < 12; i++ {
		testutil.CreateTestTransactionAt(t, db, user.ID, safe.ID, usd.ID, models.TransactionTypeIncome, "10", now.AddDate(0, 0, -i%3))
	}
	testutil.CreateTestTransactionAt(t, db, user.ID, safe.ID, usd.ID, models.TransactionTypeExpense, "20", now)

	t.Run("summary", func(t *testing.T) {
		d, err := svc.GetDashboard(user.ID, safe.ID, now)
		testutil.AssertNoError(t, err)

		if len(d.Balances) != 2 {
			t.Fatalf("expected full view with 2 currencies, got %d", len(d.Balances))
		}
		got := d.Balances.Map()
		if !got[usd.ID].Equal(testutil.Amount("600")) || !got[try.ID].IsZero() {
			t.Errorf("unexpected balances %v", got)
		}
		if len(d.RecentTransactions) != recentTransactionLimit {
			t.Errorf("expected %d recent entries, got %d", recentTransactionLimit, len(d.RecentTransactions))
		}
		if len(d.Monthly) != 1 || !d.Monthly[0].Balance.Equal(testutil.Amount("100")) {
			t.Errorf("expected this month USD 100, got %+v", d.Monthly)
		}
		if !d.MonthStart.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected month start %s", d.MonthStart)
		}
		if len(d.Daily) != 3 || d.Daily[2].Date != "2024-06-15" {
			t.Fatalf("expected 3 days ending 2024-06-15, got %+v", d.Daily)
		}
		if !d.Daily[2].Expense.Equal(testutil.Amount("20")) {
			t.Errorf("expected 20 expense today, got %s", d.Daily[2].Expense)
		}
	})

	t.Run("stranger_denied", func(t *testing.T) {
		stranger := testutil.CreateTestUser(t, db)
		_, err := svc.GetDashboard(stranger.ID, safe.ID, now)
		testutil.AssertAppError(t, err, "SAFE_ACCESS_DENIED")
	})
}
