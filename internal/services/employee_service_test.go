package services

import (
	"testing"

	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
	"kasatakip/internal/testutil"
)

func TestCreateEmployee(t *testing.T) {
	t.Run("valid_with_default_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEmployeeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
		safe := testutil.CreateTestSafe(t, db, user.ID, "")

		employee, err := svc.CreateEmployee(user.ID, EmployeeInput{
			FullName:         " Mehmet Kaya ",
			SalaryAmount:     testutil.Amount("30000"),
			SalaryCurrencyID: currency.ID,
			IsActive:         true,
			DefaultSafeID:    &safe.ID,
		})
		testutil.AssertNoError(t, err)
		if employee.FullName != "Mehmet Kaya" || employee.SalaryPeriod != models.SalaryPeriodMonthly {
			t.Errorf("unexpected employee %+v", employee)
		}
		if employee.SalaryCurrency == nil || employee.DefaultSafe == nil {
			t.Error("expected currency and default safe to be preloaded")
		}
	})

	t.Run("inaccessible_default_safe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEmployeeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
		foreign := testutil.CreateTestSafe(t, db, other.ID, "")

		_, err := svc.CreateEmployee(user.ID, EmployeeInput{
			FullName: "X", SalaryCurrencyID: currency.ID, DefaultSafeID: &foreign.ID,
		})
		testutil.AssertAppError(t, err, "SAFE_ACCESS_DENIED")
	})

	t.Run("invalid_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEmployeeService(db, NewAccessService(db))
		user := testutil.CreateTestUser(t, db)
		currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")

		_, err := svc.CreateEmployee(user.ID, EmployeeInput{
			FullName: "X", SalaryCurrencyID: currency.ID, SalaryPeriod: "yearly",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListEmployees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAccessService(db))
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
	a := testutil.CreateTestEmployee(t, db, user.ID, currency.ID)
	b := testutil.CreateTestEmployee(t, db, user.ID, currency.ID)
	testutil.CreateTestEmployee(t, db, other.ID, currency.ID)
	db.Model(a).Updates(map[string]interface{}{"full_name": "Zeynep Ak", "is_active": false})
	db.Model(b).Update("full_name", "Ali Veli")

	t.Run("scoped_and_ordered", func(t *testing.T) {
		page, err := svc.ListEmployees(user.ID, EmployeeFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 || page.Data[0].FullName != "Ali Veli" {
			t.Errorf("unexpected page %+v", page)
		}
	})

	t.Run("active_filter", func(t *testing.T) {
		active := true
		page, err := svc.ListEmployees(user.ID, EmployeeFilter{IsActive: &active}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != b.ID {
			t.Errorf("expected only the active employee, got %+v", page.Data)
		}
	})

	t.Run("search", func(t *testing.T) {
		page, err := svc.ListEmployees(user.ID, EmployeeFilter{Search: "zeynep"}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != a.ID {
			t.Errorf("expected Zeynep, got %+v", page.Data)
		}
	})
}

func TestUpdateEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db, NewAccessService(db))
	user := testutil.CreateTestUser(t, db)
	currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
	employee := testutil.CreateTestEmployee(t, db, user.ID, currency.ID)

	in := EmployeeInput{
		FullName:         "Yeni İsim",
		SalaryAmount:     testutil.Amount("40000"),
		SalaryCurrencyID: currency.ID,
		SalaryPeriod:     models.SalaryPeriodWeekly,
	}
	updated, err := svc.UpdateEmployee(user.ID, employee.ID, in, employee.Version)
	testutil.AssertNoError(t, err)
	if updated.FullName != "Yeni İsim" || updated.IsActive || updated.SalaryPeriod != models.SalaryPeriodWeekly {
		t.Errorf("unexpected employee %+v", updated)
	}

	_, err = svc.UpdateEmployee(user.ID, employee.ID, in, employee.Version)
	testutil.AssertAppError(t, err, "CONCURRENCY_CONFLICT")
}

func TestGetEmployeeAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	access := NewAccessService(db)
	svc := NewEmployeeService(db, access)
	salaries := NewSalaryService(db, access)
	user := testutil.CreateTestUser(t, db)
	currency := testutil.CreateTestCurrency(t, db, "Türk Lirası", "₺")
	safe := testutil.CreateTestSafe(t, db, user.ID, "")
	employee := testutil.CreateTestEmployee(t, db, user.ID, currency.ID)

	for i := 0; i < 2; i++ {
		_, err := salaries.CreateSalaryPayment(user.ID, employee.ID, SalaryPaymentInput{
			Amount: testutil.Amount("1000"), CurrencyID: currency.ID, SafeID: safe.ID,
		})
		testutil.AssertNoError(t, err)
	}

	got, err := svc.GetEmployee(user.ID, employee.ID)
	testutil.AssertNoError(t, err)
	if len(got.Payments) != 2 {
		t.Fatalf("expected 2 payments in history, got %d", len(got.Payments))
	}

	testutil.AssertNoError(t, svc.DeleteEmployee(user.ID, employee.ID))
	if n := testutil.CountRows(t, db, &models.SalaryPayment{}, ""); n != 0 {
		t.Errorf("expected payments removed, got %d", n)
	}
	if n := testutil.CountRows(t, db, &models.Transaction{}, ""); n != 2 {
		t.Errorf("expected ledger entries to stay, got %d", n)
	}
	_, err = svc.GetEmployee(user.ID, employee.ID)
	testutil.AssertAppError(t, err, "EMPLOYEE_NOT_FOUND")
}
