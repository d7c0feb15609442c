package models

// TransactionType marks the direction of a ledger entry. Amounts are always
// stored positive; the type carries the sign.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

var transactionTypeLabels = map[TransactionType]string{
	TransactionTypeIncome:  "Gelir",
	TransactionTypeExpense: "Gider",
}

// Label returns the display name.
func (t TransactionType) Label() string { return labelOf(transactionTypeLabels, t) }

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool { return validOf(transactionTypeLabels, t) }

// AccountSource is where an exchanged amount is taken from or paid into.
type AccountSource string

const (
	AccountSourceCash AccountSource = "cash"
	AccountSourceBank AccountSource = "bank"
)

var accountSourceLabels = map[AccountSource]string{
	AccountSourceCash: "Nakit",
	AccountSourceBank: "Banka",
}

func (s AccountSource) Label() string { return labelOf(accountSourceLabels, s) }
func (s AccountSource) Valid() bool   { return validOf(accountSourceLabels, s) }

// CounterpartyType classifies a current account.
type CounterpartyType string

const (
	CounterpartyCustomer CounterpartyType = "customer"
	CounterpartyVendor   CounterpartyType = "vendor"
	CounterpartyOther    CounterpartyType = "other"
)

var counterpartyTypeLabels = map[CounterpartyType]string{
	CounterpartyCustomer: "Müşteri",
	CounterpartyVendor:   "Satıcı",
	CounterpartyOther:    "Diğer",
}

func (c CounterpartyType) Label() string { return labelOf(counterpartyTypeLabels, c) }
func (c CounterpartyType) Valid() bool   { return validOf(counterpartyTypeLabels, c) }

// SalaryPeriod is how often an employee is paid.
type SalaryPeriod string

const (
	SalaryPeriodMonthly SalaryPeriod = "monthly"
	SalaryPeriodWeekly  SalaryPeriod = "weekly"
	SalaryPeriodDaily   SalaryPeriod = "daily"
)

var salaryPeriodLabels = map[SalaryPeriod]string{
	SalaryPeriodMonthly: "Aylık",
	SalaryPeriodWeekly:  "Haftalık",
	SalaryPeriodDaily:   "Günlük",
}

func (p SalaryPeriod) Label() string { return labelOf(salaryPeriodLabels, p) }
func (p SalaryPeriod) Valid() bool   { return validOf(salaryPeriodLabels, p) }

// BankAccountType is the product type of a bank account.
type BankAccountType string

const (
	BankAccountChecking   BankAccountType = "checking"
	BankAccountDeposit    BankAccountType = "deposit"
	BankAccountCreditCard BankAccountType = "credit_card"
	BankAccountPOS        BankAccountType = "pos"
	BankAccountOther      BankAccountType = "other"
)

var bankAccountTypeLabels = map[BankAccountType]string{
	BankAccountChecking:   "Vadesiz",
	BankAccountDeposit:    "Vadeli",
	BankAccountCreditCard: "Kredi Kartı",
	BankAccountPOS:        "POS",
	BankAccountOther:      "Diğer",
}

func (t BankAccountType) Label() string { return labelOf(bankAccountTypeLabels, t) }
func (t BankAccountType) Valid() bool   { return validOf(bankAccountTypeLabels, t) }

func validOf[K ~string](table map[K]string, k K) bool {
	_, ok := table[k]
	return ok
}

func labelOf[K ~string](table map[K]string, k K) string {
	if label, ok := table[k]; ok {
		return label
	}
	return string(k)
}
