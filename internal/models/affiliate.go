package models

import (
	"time"

	"gorm.io/gorm"
)

type Affiliate struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:320" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	BusinessName string `gorm:"size:255" json:"business_name"`

	IsActive bool `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Affiliate) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
