package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one dated, currency-tagged ledger entry of a safe.
type Transaction struct {
	Base
	SafeID           string          `gorm:"type:uuid;not null;index" json:"safe_id"`
	Type             TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CurrencyID       string          `gorm:"type:uuid;not null;index" json:"currency_id"`
	Description      string          `gorm:"size:200;not null" json:"description"`
	TransactionDate  time.Time       `gorm:"not null;index" json:"transaction_date"`
	PayeeOrPayer     string          `gorm:"size:100;index" json:"payee_or_payer,omitempty"`
	CurrentAccountID *string         `gorm:"type:uuid;index" json:"current_account_id,omitempty"`
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Currency         *Currency       `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	Safe             *Safe           `gorm:"foreignKey:SafeID" json:"safe,omitempty"`
}

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
