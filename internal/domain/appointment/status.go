package appointment

import "github.com/BruksfildServices01/inkless-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ParseStatus accepts any of the five appointment states. The owner may move
// an appointment between them freely.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func InitialStatus() Status {
	return StatusPending
}

// OccupiesSlot reports whether an appointment in status s holds its time.
func OccupiesSlot(s Status) bool {
	return s != StatusCancelled
}
