package models

import (
	"time"

	"gorm.io/gorm"
)

type Tenant struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Slug   string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Domain string `gorm:"size:255" json:"domain"`

	// Branding
	LogoURL      string `gorm:"type:text" json:"logo_url"`
	PrimaryColor string `gorm:"size:20;default:'#D4AF37'" json:"primary_color"`
	AccentColor  string `gorm:"size:20;default:'#000000'" json:"accent_color"`

	Description    string `gorm:"type:text" json:"description"`
	Phone          string `gorm:"size:50" json:"phone"`
	Email          string `gorm:"size:320" json:"email"`
	WhatsappNumber string `gorm:"size:50" json:"whatsapp_number"`
	Address        string `gorm:"type:text" json:"address"`

	Currency       string `gorm:"size:10;default:'KSh'" json:"currency"`
	Timezone       string `gorm:"size:50;default:'Africa/Nairobi'" json:"timezone"`
	BookingEnabled bool   `gorm:"not null" json:"booking_enabled"`

	OwnerID string `gorm:"size:64;index;not null" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
