package models

// Currency is display-only reference data. Amounts in different currencies
// are never combined.
type Currency struct {
	Base
	Name   string `gorm:"size:50;not null" json:"name"`
	Symbol string `gorm:"size:5;not null" json:"symbol"`
}
