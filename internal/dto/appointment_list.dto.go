package dto

import "time"

type AppointmentListDTO struct {
	ID          string     `json:"id"`
	PurchaseID  string     `json:"purchase_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Duration    int        `json:"duration"`
	Status      string     `json:"status"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	PackageName   string `json:"package_name"`

	CustomerNotes string `json:"customer_notes"`
	StaffNotes    string `json:"staff_notes"`
}
