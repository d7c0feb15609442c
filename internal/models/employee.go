package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a salaried person paid out of a safe.
type Employee struct {
	Base
	FullName         string          `gorm:"size:150;not null;index" json:"full_name"`
	Position         string          `gorm:"size:100" json:"position,omitempty"`
	SalaryAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"salary_amount"`
	SalaryCurrencyID string          `gorm:"type:uuid;not null;index" json:"salary_currency_id"`
	SalaryPeriod     SalaryPeriod    `gorm:"type:varchar(20);not null" json:"salary_period"`
	HireDate         *time.Time      `json:"hire_date,omitempty"`
	IsActive         bool            `gorm:"not null" json:"is_active"`
	DefaultSafeID    *string         `gorm:"type:uuid;index" json:"default_safe_id,omitempty"`
	Notes            string          `gorm:"size:250" json:"notes,omitempty"`
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	SalaryCurrency   *Currency       `gorm:"foreignKey:SalaryCurrencyID" json:"salary_currency,omitempty"`
	DefaultSafe      *Safe           `gorm:"foreignKey:DefaultSafeID" json:"default_safe,omitempty"`
	Payments         []SalaryPayment `gorm:"foreignKey:EmployeeID" json:"payments,omitempty"`
}

// SalaryPayment records money paid to an employee. TransactionID points at
// the expense entry created with it; it is nil when that entry is gone.
type SalaryPayment struct {
	Base
	EmployeeID    string          `gorm:"type:uuid;not null;index" json:"employee_id"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CurrencyID    string          `gorm:"type:uuid;not null;index" json:"currency_id"`
	SafeID        string          `gorm:"type:uuid;not null;index" json:"safe_id"`
	Description   string          `gorm:"size:200" json:"description,omitempty"`
	TransactionID *string         `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Currency      *Currency       `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	Safe          *Safe           `gorm:"foreignKey:SafeID" json:"safe,omitempty"`
}
