package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyExchange links the expense and income entries produced by one
// conversion. Both transaction ids are always set.
type CurrencyExchange struct {
	Base
	SoldCurrencyID       string          `gorm:"type:uuid;not null" json:"sold_currency_id"`
	SoldAmount           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"sold_amount"`
	SoldAccountSource    AccountSource   `gorm:"type:varchar(10);not null" json:"sold_account_source"`
	BoughtCurrencyID     string          `gorm:"type:uuid;not null" json:"bought_currency_id"`
	BoughtAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"bought_amount"`
	BoughtAccountSource  AccountSource   `gorm:"type:varchar(10);not null" json:"bought_account_source"`
	ExchangeDate         time.Time       `gorm:"not null" json:"exchange_date"`
	CurrentAccountID     *string         `gorm:"type:uuid;index" json:"current_account_id,omitempty"`
	Description          string          `gorm:"size:200" json:"description"`
	ExpenseTransactionID string          `gorm:"type:uuid;not null;index" json:"expense_transaction_id"`
	IncomeTransactionID  string          `gorm:"type:uuid;not null;index" json:"income_transaction_id"`
	MainSafeID           string          `gorm:"type:uuid;not null;index" json:"main_safe_id"`
	UserID               string          `gorm:"type:uuid;not null;index" json:"user_id"`
	SoldCurrency         *Currency       `gorm:"foreignKey:SoldCurrencyID" json:"sold_currency,omitempty"`
	BoughtCurrency       *Currency       `gorm:"foreignKey:BoughtCurrencyID" json:"bought_currency,omitempty"`
}

// Sibling returns the other transaction of the pair, or "" when id is not
// one of them.
func (e CurrencyExchange) Sibling(id string) string {
	switch id {
	case e.ExpenseTransactionID:
		return e.IncomeTransactionID
	case e.IncomeTransactionID:
		return e.ExpenseTransactionID
	}
	return ""
}
