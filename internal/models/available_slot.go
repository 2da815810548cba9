package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailableSlot is one weekly opening window of a tenant.
// DayOfWeek follows time.Weekday (0 = Sunday).
type AvailableSlot struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:10;not null" json:"start_time"` // "09:00"
	EndTime   string `gorm:"size:10;not null" json:"end_time"`   // "17:00"

	IsActive bool `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *AvailableSlot) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

type BlockedDate struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	Date   time.Time `gorm:"not null" json:"date"`
	Reason string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockedDate) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
