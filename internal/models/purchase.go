package models

import (
	"time"

	"gorm.io/gorm"
)

type Purchase struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	TenantID  string `gorm:"size:64;index;not null" json:"tenant_id"`
	PackageID string `gorm:"size:64;index;not null" json:"package_id"`

	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:320;index;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:50;not null" json:"customer_phone"`

	AmountPaid        int64 `gorm:"not null" json:"amount_paid"`
	SessionsTotal     int   `gorm:"not null" json:"sessions_total"`
	SessionsRemaining int   `gorm:"not null" json:"sessions_remaining"`

	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	TransactionID string `gorm:"size:255" json:"transaction_id"`

	// Affiliate tracking
	CouponCode       *string `gorm:"size:50" json:"coupon_code"`
	DiscountAmount   int64   `gorm:"default:0" json:"discount_amount"`
	AffiliateID      *string `gorm:"size:64;index" json:"affiliate_id"`
	CommissionAmount int64   `gorm:"default:0" json:"commission_amount"`

	Status    string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
