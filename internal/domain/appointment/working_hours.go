package appointment

import (
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// Window is one opening interval on a concrete day.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowsForDay projects the weekly availability rows onto day, keeping only
// active rows for its weekday. Rows with unparsable times are skipped.
func WindowsForDay(slots []models.AvailableSlot, day time.Time) []Window {
	weekday := int(day.Weekday())

	var out []Window
	for _, s := range slots {
		if !s.IsActive || s.DayOfWeek != weekday {
			continue
		}

		start, ok1 := atClock(day, s.StartTime)
		end, ok2 := atClock(day, s.EndTime)
		if !ok1 || !ok2 || !end.After(start) {
			continue
		}

		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// IsWithinAvailability reports whether [start, end) fits inside one window.
func IsWithinAvailability(windows []Window, start, end time.Time) bool {
	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return true
		}
	}
	return false
}

// ValidClock reports whether hm is a HH:MM time of day.
func ValidClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

func atClock(day time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), true
}
