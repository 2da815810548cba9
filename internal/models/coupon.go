package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon grants a percentage or fixed discount. Codes are stored upper-cased
// and are unique across all tenants.
type Coupon struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	TenantID    string  `gorm:"size:64;index;not null" json:"tenant_id"`
	AffiliateID *string `gorm:"size:64;index" json:"affiliate_id"`

	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	DiscountType  string `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue int64  `gorm:"not null" json:"discount_value"`

	CommissionType  string `gorm:"size:20;not null" json:"commission_type"`
	CommissionValue int64  `gorm:"not null" json:"commission_value"`

	MaxUses   *int `json:"max_uses"`
	UsesCount int  `gorm:"not null;default:0" json:"uses_count"`

	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	IsActive   bool       `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
