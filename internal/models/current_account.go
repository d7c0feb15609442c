package models

// CurrentAccount is a counterparty (customer, vendor or other). Ledger
// entries link to it by CurrentAccountID; older entries only carry the name
// in PayeeOrPayer.
type CurrentAccount struct {
	Base
	Name           string           `gorm:"size:150;not null;index" json:"name"`
	Type           CounterpartyType `gorm:"type:varchar(20);not null" json:"type"`
	TaxNumber      string           `gorm:"size:20" json:"tax_number,omitempty"`
	IdentityNumber string           `gorm:"size:11" json:"identity_number,omitempty"`
	Address        string           `gorm:"size:500" json:"address,omitempty"`
	Phone          string           `gorm:"size:20" json:"phone,omitempty"`
	Email          string           `gorm:"size:100" json:"email,omitempty"`
	Notes          string           `gorm:"size:250" json:"notes,omitempty"`
	UserID         string           `gorm:"type:uuid;not null;index" json:"user_id"`
}
