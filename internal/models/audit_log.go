package models

import "time"

// AuditLog is append-only. Rows are listed per tenant, newest first.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID string  `gorm:"size:64;not null;index:idx_audit_tenant_created,priority:1" json:"tenant_id"`
	UserID   *string `gorm:"size:64" json:"user_id,omitempty"`

	Action   string  `gorm:"size:50;not null;index" json:"action"`
	Entity   string  `gorm:"size:50;index" json:"entity"`
	EntityID *string `gorm:"size:64" json:"entity_id,omitempty"`

	// JSON encoded event metadata.
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_tenant_created,priority:2" json:"created_at"`
}
