package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID         string `gorm:"primaryKey;size:64" json:"id"`
	TenantID   string `gorm:"size:64;index;not null" json:"tenant_id"`
	PurchaseID string `gorm:"size:64;index;not null" json:"purchase_id"`

	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at"`
	Duration    int        `gorm:"default:60" json:"duration"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	ConfirmationSent bool `gorm:"default:false" json:"confirmation_sent"`
	ReminderSent     bool `gorm:"default:false" json:"reminder_sent"`

	CustomerNotes string `gorm:"type:text" json:"customer_notes"`
	StaffNotes    string `gorm:"type:text" json:"staff_notes"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
