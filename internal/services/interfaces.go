package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"kasatakip/internal/models"
	"kasatakip/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AccessServicer decides who may operate on a safe.
type AccessServicer interface {
	CanAccess(userID, safeID string) (bool, error)
	AccessibleSafes(userID string) ([]models.Safe, error)
	RequireAccess(userID, safeID string) (*models.Safe, error)
	RequireOwner(userID, safeID string) (*models.Safe, error)
}

// CurrencyServicer defines the contract for currency reference data.
type CurrencyServicer interface {
	CreateCurrency(name, symbol string) (*models.Currency, error)
	ListCurrencies() ([]models.Currency, error)
	GetCurrencyByID(id string) (*models.Currency, error)
	UpdateCurrency(id, name, symbol string, version int64) (*models.Currency, error)
	DeleteCurrency(id string) error
}

// SafeSummary is a safe as seen by one user.
type SafeSummary struct {
	models.Safe
	IsOwner bool `json:"is_owner"`
}

// SafeServicer defines the contract for safe management.
type SafeServicer interface {
	CreateSafe(userID, name string) (*models.Safe, error)
	ListAccessibleSafes(userID string) ([]SafeSummary, error)
	GetSafe(userID, safeID string) (*models.Safe, error)
	RenameSafe(userID, safeID, name string, version int64) (*models.Safe, error)
	DeleteSafe(userID, safeID string) error
	GetSafeBalances(userID, safeID string) (Balances, error)
}

// AuthorizationServicer manages access grants on safes. Only the safe owner
// may call the mutating methods.
type AuthorizationServicer interface {
	AssignAccess(ownerID, safeID, granteeEmail string) (*models.SafeAuthorization, error)
	ListGrants(ownerID, search string) ([]models.SafeAuthorization, error)
	ToggleAccess(ownerID, safeID, granteeID string) (*models.SafeAuthorization, error)
	RevokeAccess(ownerID, safeID, granteeID string) error
}

// SelectionServicer resolves the safe a session is working on.
type SelectionServicer interface {
	Current(ctx context.Context, sessionID, userID string) (*models.Safe, error)
	Select(ctx context.Context, sessionID, userID, safeID string) (*models.Safe, error)
}

// TransactionInput holds the fields of a new ledger entry.
type TransactionInput struct {
	SafeID           string
	Type             models.TransactionType
	Amount           decimal.Decimal
	CurrencyID       string
	Description      string
	Date             time.Time
	PayeeOrPayer     string
	CurrentAccountID *string
}

// TransactionUpdateFields holds optional fields for updating a transaction.
// Version is the version the caller last read; zero means "whatever is stored now".
type TransactionUpdateFields struct {
	SafeID              *string
	Amount              *decimal.Decimal
	CurrencyID          *string
	Description         *string
	Date                *time.Time
	PayeeOrPayer        *string
	CurrentAccountID    *string
	ClearCurrentAccount bool
	Version             int64
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CurrencyID *string
}

// CascadeResult describes what a transaction delete removed.
type CascadeResult struct {
	DeletedTransactionIDs []string `json:"deleted_transaction_ids"`
	ExchangeID            string   `json:"exchange_id,omitempty"`
	SalaryPaymentID       string   `json:"salary_payment_id,omitempty"`
}

// TransactionServicer defines the contract for the ledger. DeleteTransaction
// is the only way to remove an entry and always unwinds composite operations.
type TransactionServicer interface {
	AddTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetSafeTransactions(userID, safeID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	DeleteTransaction(userID, transactionID string) (*CascadeResult, error)
}

// ExchangeInput is a currency exchange request.
type ExchangeInput struct {
	SoldCurrencyID      string
	SoldAmount          decimal.Decimal
	SoldAccountSource   models.AccountSource
	BoughtCurrencyID    string
	BoughtAmount        decimal.Decimal
	BoughtAccountSource models.AccountSource
	ExchangeDate        time.Time
	CurrentAccountID    *string
	Description         string
}

// ExchangeResult is a committed exchange with its two ledger entries.
type ExchangeResult struct {
	Exchange *models.CurrencyExchange `json:"exchange"`
	Expense  *models.Transaction      `json:"expense_transaction"`
	Income   *models.Transaction      `json:"income_transaction"`
}

// ExchangeServicer defines the contract for currency exchanges.
type ExchangeServicer interface {
	CreateExchange(userID, safeID string, in ExchangeInput) (*ExchangeResult, error)
	GetExchangeByID(userID, exchangeID string) (*models.CurrencyExchange, error)
	ListExchanges(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CurrencyExchange], error)
}

// SalaryPaymentInput holds the editable fields of a salary payment.
type SalaryPaymentInput struct {
	PaymentDate time.Time
	Amount      decimal.Decimal
	CurrencyID  string
	SafeID      string
	Description string
}

// SalaryServicer defines the contract for salary payments. Each payment owns
// one expense transaction that is written and removed together with it.
type SalaryServicer interface {
	CreateSalaryPayment(userID, employeeID string, in SalaryPaymentInput) (*models.SalaryPayment, error)
	UpdateSalaryPayment(userID, paymentID string, in SalaryPaymentInput, version int64) (*models.SalaryPayment, error)
	DeleteSalaryPayment(userID, paymentID string) error
	GetSalaryPayment(userID, paymentID string) (*models.SalaryPayment, error)
	GetEmployeePayments(userID, employeeID string) ([]models.SalaryPayment, error)
}

// EmployeeInput holds the editable fields of an employee.
type EmployeeInput struct {
	FullName         string
	Position         string
	SalaryAmount     decimal.Decimal
	SalaryCurrencyID string
	SalaryPeriod     models.SalaryPeriod
	HireDate         *time.Time
	IsActive         bool
	DefaultSafeID    *string
	Notes            string
}

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	Search   string
	IsActive *bool
}

// EmployeeServicer defines the contract for employee management.
type EmployeeServicer interface {
	CreateEmployee(userID string, in EmployeeInput) (*models.Employee, error)
	ListEmployees(userID string, filter EmployeeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error)
	GetEmployee(userID, employeeID string) (*models.Employee, error)
	UpdateEmployee(userID, employeeID string, in EmployeeInput, version int64) (*models.Employee, error)
	DeleteEmployee(userID, employeeID string) error
}

// CurrentAccountInput holds the editable fields of a counterparty.
type CurrentAccountInput struct {
	Name           string
	Type           models.CounterpartyType
	TaxNumber      string
	IdentityNumber string
	Address        string
	Phone          string
	Email          string
	Notes          string
}

// CurrentAccountSummary is a counterparty with its non-trivial balances.
type CurrentAccountSummary struct {
	models.CurrentAccount
	Balances Balances `json:"balances"`
}

// CurrentAccountServicer defines the contract for counterparties.
type CurrentAccountServicer interface {
	CreateCurrentAccount(userID string, in CurrentAccountInput) (*models.CurrentAccount, error)
	ListCurrentAccounts(userID, search string, accountType *models.CounterpartyType) ([]CurrentAccountSummary, error)
	GetCurrentAccount(userID, accountID string) (*CurrentAccountSummary, error)
	UpdateCurrentAccount(userID, accountID string, in CurrentAccountInput, version int64) (*models.CurrentAccount, error)
	DeleteCurrentAccount(userID, accountID string) error
}

// BankServicer defines the contract for bank reference data.
type BankServicer interface {
	CreateBank(name string) (*models.Bank, error)
	ListBanks() ([]models.Bank, error)
	UpdateBank(id, name string, version int64) (*models.Bank, error)
	DeleteBank(id string) error
}

// BankAccountInput holds the editable fields of a bank account.
type BankAccountInput struct {
	BankID        string
	AccountName   string
	IBAN          string
	BranchCode    string
	AccountNumber string
	CurrencyID    string
	AccountType   models.BankAccountType
	Notes         string
}

// BankAccountServicer defines the contract for a user's bank accounts.
type BankAccountServicer interface {
	CreateBankAccount(userID string, in BankAccountInput) (*models.BankAccount, error)
	ListBankAccounts(userID, search string) ([]models.BankAccount, error)
	GetBankAccount(userID, accountID string) (*models.BankAccount, error)
	UpdateBankAccount(userID, accountID string, in BankAccountInput, version int64) (*models.BankAccount, error)
	DeleteBankAccount(userID, accountID string) error
}

// DailyTotal is one day of activity in one currency.
type DailyTotal struct {
	Date       string          `json:"date"`
	CurrencyID string          `json:"currency_id"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
}

// Dashboard summarises one safe.
type Dashboard struct {
	Safe               models.Safe          `json:"safe"`
	Balances           Balances             `json:"balances"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	MonthStart         time.Time            `json:"month_start"`
	Monthly            Balances             `json:"monthly"`
	Daily              []DailyTotal         `json:"daily"`
}

// DashboardServicer builds the safe dashboard.
type DashboardServicer interface {
	GetDashboard(userID, safeID string, now time.Time) (*Dashboard, error)
}

// ReportFilter selects the transactions of a report. Dates are inclusive days.
type ReportFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Type             string
	SafeID           *string
	CurrentAccountID *string
	EmployeeID       *string
}

// Report is a filtered, date-ordered list of transactions with per-currency totals.
type Report struct {
	StartDate       time.Time            `json:"start_date"`
	EndDate         time.Time            `json:"end_date"`
	Type            string               `json:"type"`
	Transactions    []models.Transaction `json:"transactions"`
	Totals          Balances             `json:"totals"`
	PrimaryCurrency *CurrencyBalance     `json:"primary_currency,omitempty"`
}

// ReportServicer builds reports.
type ReportServicer interface {
	GenerateReport(userID string, filter ReportFilter, now time.Time) (*Report, error)
}
