package services

import (
	"testing"

	"kasatakip/internal/models"
	"kasatakip/internal/testutil"
)

func TestBankService(t *testing.T) {
	t.Run("create_and_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBankService(db)

		_, err := svc.CreateBank("Ziraat Bankası")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBank("Akbank")
		testutil.AssertNoError(t, err)

		banks, err := svc.ListBanks()
		testutil.AssertNoError(t, err)
		if len(banks) != 2 || banks[0].Name != "Akbank" {
			t.Errorf("unexpected banks %+v", banks)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBankService(db)

		_, err := svc.CreateBank("Akbank")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBank("AKBANK")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBankService(db)
		bank := testutil.CreateTestBank(t, db)

		updated, err := svc.UpdateBank(bank.ID, "Yeni Banka", bank.Version)
		testutil.AssertNoError(t, err)
		if updated.Name != "Yeni Banka" {
			t.Errorf("expected rename, got %s", updated.Name)
		}
	})

	t.Run("delete_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBankService(db)
		user := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
		bank := testutil.CreateTestBank(t, db)
		_, err := NewBankAccountService(db).CreateBankAccount(user.ID, BankAccountInput{
			BankID: bank.ID, AccountName: "Vadesiz TL", CurrencyID: currency.ID,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteBank(bank.ID), "BANK_IN_USE")
	})

	t.Run("delete_unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBankService(db)
		bank := testutil.CreateTestBank(t, db)

		testutil.AssertNoError(t, svc.DeleteBank(bank.ID))
		testutil.AssertAppError(t, svc.DeleteBank(bank.ID), "BANK_NOT_FOUND")
	})
}

func TestBankAccountService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBankAccountService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
	bank := testutil.CreateTestBank(t, db)

	account, err := svc.CreateBankAccount(user.ID, BankAccountInput{
		BankID:      bank.ID,
		AccountName: "Ticari Hesap",
		IBAN:        "tr33 0006 1005 1978 6457 8413 26",
		CurrencyID:  currency.ID,
	})
	testutil.AssertNoError(t, err)

	t.Run("normalized_and_defaulted", func(t *testing.T) {
		if account.IBAN != "TR330006100519786457841326" {
			t.Errorf("expected compact IBAN, got %q", account.IBAN)
		}
		if account.AccountType != models.BankAccountChecking {
			t.Errorf("expected checking, got %s", account.AccountType)
		}
		if account.Bank == nil || account.Currency == nil {
			t.Error("expected bank and currency to be preloaded")
		}
	})

	t.Run("search_by_bank_name", func(t *testing.T) {
		list, err := svc.ListBankAccounts(user.ID, bank.Name)
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Errorf("expected 1 account, got %d", len(list))
		}
		list, err = svc.ListBankAccounts(other.ID, "")
		testutil.AssertNoError(t, err)
		if len(list) != 0 {
			t.Errorf("expected other user to see nothing, got %d", len(list))
		}
	})

	t.Run("unknown_bank", func(t *testing.T) {
		_, err := svc.CreateBankAccount(user.ID, BankAccountInput{
			BankID: "0190a9d6-0000-7000-8000-000000000000", AccountName: "X", CurrencyID: currency.ID,
		})
		testutil.AssertAppError(t, err, "BANK_NOT_FOUND")
	})

	t.Run("update_and_conflict", func(t *testing.T) {
		in := BankAccountInput{BankID: bank.ID, AccountName: "POS Hesabı", CurrencyID: currency.ID, AccountType: models.BankAccountPOS}
		updated, err := svc.UpdateBankAccount(user.ID, account.ID, in, account.Version)
		testutil.AssertNoError(t, err)
		if updated.AccountType != models.BankAccountPOS {
			t.Errorf("expected pos, got %s", updated.AccountType)
		}
		_, err = svc.UpdateBankAccount(user.ID, account.ID, in, account.Version)
		testutil.AssertAppError(t, err, "CONCURRENCY_CONFLICT")
	})

	t.Run("delete_scoped_to_owner", func(t *testing.T) {
		testutil.AssertAppError(t, svc.DeleteBankAccount(other.ID, account.ID), "BANK_ACCOUNT_NOT_FOUND")
		testutil.AssertNoError(t, svc.DeleteBankAccount(user.ID, account.ID))
	})
}
