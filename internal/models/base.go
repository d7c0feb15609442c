package models

import (
	"time"

	"kasatakip/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Version backs the optimistic
// concurrency check: it starts at 1 and every update bumps it.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `gorm:"not null;default:1" json:"version"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return nil
}
