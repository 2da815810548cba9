package models

import (
	"time"

	"gorm.io/gorm"
)

// ServicePackage is a purchasable bundle of treatment sessions.
// Prices are stored in the currency's smallest unit.
type ServicePackage struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Price         int64  `gorm:"not null" json:"price"`
	OriginalPrice *int64 `json:"original_price"`

	SessionsIncluded int `gorm:"not null;default:1" json:"sessions_included"`

	IsPopular    bool   `gorm:"default:false" json:"is_popular"`
	Badge        string `gorm:"size:100" json:"badge"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	IsActive     bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ServicePackage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
