package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kasatakip/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a decimal literal, failing loudly on typos in test tables.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		FullName: "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCurrency creates a currency with the given name and symbol.
func CreateTestCurrency(t *testing.T, db *gorm.DB, name, symbol string) *models.Currency {
	t.Helper()

	currency := &models.Currency{Name: name, Symbol: symbol}
	if err := db.Create(currency).Error; err != nil {
		t.Fatalf("failed to create test currency: %v", err)
	}
	return currency
}

// CreateTestSafe creates a safe owned by userID. An empty name gets a unique one.
func CreateTestSafe(t *testing.T, db *gorm.DB, userID, name string) *models.Safe {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("Test Safe %d", nextID())
	}
	safe := &models.Safe{Name: name, UserID: userID}
	if err := db.Create(safe).Error; err != nil {
		t.Fatalf("failed to create test safe: %v", err)
	}
	return safe
}

// GrantTestAccess authorizes userID on safeID.
func GrantTestAccess(t *testing.T, db *gorm.DB, userID, safeID string, active bool) *models.SafeAuthorization {
	t.Helper()

	grant := &models.SafeAuthorization{
		UserID:      userID,
		SafeID:      safeID,
		IsActive:    active,
		GrantedDate: time.Now(),
	}
	if err := db.Create(grant).Error; err != nil {
		t.Fatalf("failed to create test grant: %v", err)
	}
	return grant
}

// CreateTestTransaction records a ledger entry dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, safeID, currencyID string, txType models.TransactionType, amount string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, safeID, currencyID, txType, amount, time.Now())
}

// CreateTestTransactionAt records a ledger entry with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID, safeID, currencyID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		SafeID:          safeID,
		Type:            txType,
		Amount:          Amount(amount),
		CurrencyID:      currencyID,
		Description:     fmt.Sprintf("Test transaction %d", nextID()),
		TransactionDate: date,
		UserID:          userID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCurrentAccount creates a customer owned by userID.
func CreateTestCurrentAccount(t *testing.T, db *gorm.DB, userID, name string) *models.CurrentAccount {
	t.Helper()

	account := &models.CurrentAccount{
		Name:   name,
		Type:   models.CounterpartyCustomer,
		UserID: userID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test current account: %v", err)
	}
	return account
}

// CreateTestEmployee creates an active monthly-paid employee.
func CreateTestEmployee(t *testing.T, db *gorm.DB, userID, currencyID string) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		FullName:         fmt.Sprintf("Employee %d", nextID()),
		Position:         "Kasiyer",
		SalaryAmount:     Amount("25000"),
		SalaryCurrencyID: currencyID,
		SalaryPeriod:     models.SalaryPeriodMonthly,
		IsActive:         true,
		UserID:           userID,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// CreateTestBank creates a bank with a unique name.
func CreateTestBank(t *testing.T, db *gorm.DB) *models.Bank {
	t.Helper()

	bank := &models.Bank{Name: fmt.Sprintf("Test Bank %d", nextID())}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to create test bank: %v", err)
	}
	return bank
}
