package models

// Bank is reference data for bank accounts.
type Bank struct {
	Base
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// BankAccount is selectable ownership data; it does not feed the ledger.
type BankAccount struct {
	Base
	BankID        string          `gorm:"type:uuid;not null;index" json:"bank_id"`
	AccountName   string          `gorm:"size:100;not null" json:"account_name"`
	IBAN          string          `gorm:"column:iban;size:34" json:"iban,omitempty"`
	BranchCode    string          `gorm:"size:10" json:"branch_code,omitempty"`
	AccountNumber string          `gorm:"size:20" json:"account_number,omitempty"`
	CurrencyID    string          `gorm:"type:uuid;not null;index" json:"currency_id"`
	AccountType   BankAccountType `gorm:"type:varchar(20);not null" json:"account_type"`
	Notes         string          `gorm:"size:250" json:"notes,omitempty"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Bank          *Bank           `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	Currency      *Currency       `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
}
