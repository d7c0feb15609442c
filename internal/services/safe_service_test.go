package services

import (
	"testing"

	"kasatakip/internal/models"
	"kasatakip/internal/testutil"
)

func TestCreateSafe(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)

		safe, err := svc.CreateSafe(user.ID, " Ana Kasa ")
		testutil.AssertNoError(t, err)
		if safe.Name != "Ana Kasa" || safe.UserID != user.ID {
			t.Errorf("unexpected safe %+v", safe)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSafe(user.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListAccessibleSafes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSafeService(db, NewAccessService(db))
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateTestSafe(t, db, user.ID, "Kendi")
	shared := testutil.CreateTestSafe(t, db, other.ID, "Ortak")
	testutil.GrantTestAccess(t, db, user.ID, shared.ID, true)

	list, err := svc.ListAccessibleSafes(user.ID)
	testutil.AssertNoError(t, err)
	if len(list) != 2 {
		t.Fatalf("expected 2 safes, got %d", len(list))
	}
	if !list[0].IsOwner || list[1].IsOwner {
		t.Errorf("expected owner flags [true false], got [%v %v]", list[0].IsOwner, list[1].IsOwner)
	}
}

func TestRenameSafe(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, user.ID, "Eski")

		renamed, err := svc.RenameSafe(user.ID, safe.ID, "Yeni", safe.Version)
		testutil.AssertNoError(t, err)
		if renamed.Name != "Yeni" || renamed.Version != safe.Version+1 {
			t.Errorf("unexpected safe %+v", renamed)
		}
	})

	t.Run("grantee_cannot_rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		owner := testutil.CreateTestUser(t, db)
		grantee := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "Kasa")
		testutil.GrantTestAccess(t, db, grantee.ID, safe.ID, true)

		_, err := svc.RenameSafe(grantee.ID, safe.ID, "Yeni", 0)
		testutil.AssertAppError(t, err, "NOT_SAFE_OWNER")
	})

	t.Run("stale_version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, user.ID, "Kasa")

		_, err := svc.RenameSafe(user.ID, safe.ID, "Bir", safe.Version)
		testutil.AssertNoError(t, err)
		_, err = svc.RenameSafe(user.ID, safe.ID, "İki", safe.Version)
		testutil.AssertAppError(t, err, "CONCURRENCY_CONFLICT")
	})
}

func TestDeleteSafe(t *testing.T) {
	t.Run("cascades_transactions_and_grants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		owner := testutil.CreateTestUser(t, db)
		grantee := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Dolar", "$")
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")
		keep := testutil.CreateTestSafe(t, db, owner.ID, "")
		testutil.GrantTestAccess(t, db, grantee.ID, safe.ID, true)
		testutil.CreateTestTransaction(t, db, owner.ID, safe.ID, currency.ID, models.TransactionTypeIncome, "10")
		testutil.CreateTestTransaction(t, db, owner.ID, keep.ID, currency.ID, models.TransactionTypeIncome, "10")
		employee := testutil.CreateTestEmployee(t, db, owner.ID, currency.ID)
		db.Model(employee).Update("default_safe_id", safe.ID)

		testutil.AssertNoError(t, svc.DeleteSafe(owner.ID, safe.ID))

		if n := testutil.CountRows(t, db, &models.Safe{}, "id = ?", safe.ID); n != 0 {
			t.Errorf("expected safe to be deleted")
		}
		if n := testutil.CountRows(t, db, &models.Transaction{}, "safe_id = ?", safe.ID); n != 0 {
			t.Errorf("expected safe transactions to be deleted, got %d", n)
		}
		if n := testutil.CountRows(t, db, &models.Transaction{}, "safe_id = ?", keep.ID); n != 1 {
			t.Errorf("expected other safe transactions to remain, got %d", n)
		}
		if n := testutil.CountRows(t, db, &models.SafeAuthorization{}, "safe_id = ?", safe.ID); n != 0 {
			t.Errorf("expected grants to be deleted, got %d", n)
		}
		if n := testutil.CountRows(t, db, &models.Employee{}, "default_safe_id IS NULL"); n != 1 {
			t.Errorf("expected employee default safe to be cleared")
		}
	})

	t.Run("in_use_by_salary_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		access := NewAccessService(db)
		svc := NewSafeService(db, access)
		owner := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")
		employee := testutil.CreateTestEmployee(t, db, owner.ID, currency.ID)
		_, err := NewSalaryService(db, access).CreateSalaryPayment(owner.ID, employee.ID, SalaryPaymentInput{
			Amount: testutil.Amount("100"), CurrencyID: currency.ID, SafeID: safe.ID,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteSafe(owner.ID, safe.ID), "SAFE_IN_USE")
		if n := testutil.CountRows(t, db, &models.Transaction{}, "safe_id = ?", safe.ID); n != 1 {
			t.Errorf("expected transactions to remain, got %d", n)
		}
	})

	t.Run("grantee_cannot_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		owner := testutil.CreateTestUser(t, db)
		grantee := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")
		testutil.GrantTestAccess(t, db, grantee.ID, safe.ID, true)

		testutil.AssertAppError(t, svc.DeleteSafe(grantee.ID, safe.ID), "NOT_SAFE_OWNER")
	})
}

func TestGetSafeBalances(t *testing.T) {
	t.Run("main_register", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		usd := testutil.CreateTestCurrency(t, db, "Dolar", "$")
		try := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
		gbp := testutil.CreateTestCurrency(t, db, "Sterlin", "£")
		safe := testutil.CreateTestSafe(t, db, user.ID, "Main Register")
		other := testutil.CreateTestSafe(t, db, user.ID, "Other")
		testutil.CreateTestTransaction(t, db, user.ID, safe.ID, usd.ID, models.TransactionTypeIncome, "100")
		testutil.CreateTestTransaction(t, db, user.ID, safe.ID, usd.ID, models.TransactionTypeExpense, "30")
		testutil.CreateTestTransaction(t, db, user.ID, safe.ID, try.ID, models.TransactionTypeIncome, "50")
		testutil.CreateTestTransaction(t, db, user.ID, other.ID, try.ID, models.TransactionTypeIncome, "999")

		balances, err := svc.GetSafeBalances(user.ID, safe.ID)
		testutil.AssertNoError(t, err)
		got := balances.Map()
		if !got[usd.ID].Equal(testutil.Amount("70")) {
			t.Errorf("expected USD 70, got %s", got[usd.ID])
		}
		if !got[try.ID].Equal(testutil.Amount("50")) {
			t.Errorf("expected TRY 50, got %s", got[try.ID])
		}
		if b, ok := got[gbp.ID]; !ok || !b.IsZero() {
			t.Errorf("expected GBP listed as zero, got %s (present=%v)", b, ok)
		}
	})

	t.Run("stranger_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSafeService(db, NewAccessService(db))
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		safe := testutil.CreateTestSafe(t, db, owner.ID, "")

		_, err := svc.GetSafeBalances(stranger.ID, safe.ID)
		testutil.AssertAppError(t, err, "SAFE_ACCESS_DENIED")
	})
}
