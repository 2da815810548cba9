package purchase

import (
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusCompleted, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
	PaymentCash  PaymentMethod = "cash"
)

func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentMpesa, PaymentCard, PaymentCash:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ApplySessionsRemaining writes the remaining session count and derives the
// purchase status from it. Values below zero are stored as zero.
func ApplySessionsRemaining(p *models.Purchase, remaining int) error {
	if remaining > p.SessionsTotal {
		return httperr.ErrBusiness("invalid_sessions_remaining")
	}
	if remaining <= 0 {
		p.SessionsRemaining = 0
		p.Status = string(StatusCompleted)
		return nil
	}

	p.SessionsRemaining = remaining
	p.Status = string(StatusActive)
	return nil
}

// CanBook reports whether another session can be scheduled on p.
func CanBook(p *models.Purchase) error {
	if p.Status != string(StatusActive) {
		return httperr.ErrBusiness("purchase_not_active")
	}
	if p.SessionsRemaining <= 0 {
		return httperr.ErrBusiness("no_sessions_remaining")
	}
	return nil
}
