package models

import "time"

// Safe is a cash register owned by exactly one user.
type Safe struct {
	Base
	Name   string `gorm:"size:100;not null;index" json:"name"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
}

// TableName pins the table; the default inflection would pick "saves".
func (Safe) TableName() string { return "safes" }

// SafeAuthorization grants a non-owner access to a safe. The pair
// (UserID, SafeID) is the key; only active grants open the safe.
type SafeAuthorization struct {
	UserID      string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	SafeID      string    `gorm:"type:uuid;primaryKey;index" json:"safe_id"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	GrantedDate time.Time `gorm:"not null" json:"granted_date"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Safe        *Safe     `gorm:"foreignKey:SafeID" json:"safe,omitempty"`
}
