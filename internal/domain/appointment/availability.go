package appointment

import "time"

// SessionLength is the duration of one treatment session and the step
// between bookable start times.
const SessionLength = 60 * time.Minute

type AvailabilityInput struct {
	TenantID string
	Date     time.Time // midnight in the tenant timezone
	Now      time.Time
}

type TimeSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
