package models

// User represents an authenticated operator of the ledger.
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"size:100" json:"full_name"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}
