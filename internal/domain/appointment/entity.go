package appointment

import (
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to next and stamps the completion or cancellation time.
// It reports whether this is the first time ap reaches completed, which is
// the moment a session is consumed from the purchase.
func Transition(ap *models.Appointment, next Status, now time.Time) bool {
	firstCompletion := next == StatusCompleted && ap.CompletedAt == nil

	ap.Status = string(next)

	switch next {
	case StatusCompleted:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	case StatusCancelled:
		ap.CancelledAt = &now
	}

	return firstCompletion
}

// Schedule places a pending appointment at start.
func Schedule(ap *models.Appointment, start time.Time, notes string) {
	ap.ScheduledAt = &start
	ap.Duration = int(SessionLength / time.Minute)
	ap.Status = string(StatusPending)
	if notes != "" {
		ap.CustomerNotes = notes
	}
}
