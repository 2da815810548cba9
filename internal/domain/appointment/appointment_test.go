package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled", "no_show"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("scheduled")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTransition_FirstCompletionOnly(t *testing.T) {
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: "confirmed"}

	assert.True(t, Transition(ap, StatusCompleted, now))
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)

	assert.False(t, Transition(ap, StatusConfirmed, now.Add(time.Hour)))
	assert.False(t, Transition(ap, StatusCompleted, now.Add(2*time.Hour)))
	assert.Equal(t, now, *ap.CompletedAt)
}

func TestTransition_CancelStamps(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: "pending"}

	assert.False(t, Transition(ap, StatusCancelled, now))
	require.NotNil(t, ap.CancelledAt)
	assert.False(t, OccupiesSlot(Status(ap.Status)))
}

func TestWindowsForDay(t *testing.T) {
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	slots := []models.AvailableSlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00", IsActive: false},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "bad", EndTime: "17:00", IsActive: true},
	}

	w := WindowsForDay(slots, monday)

	require.Len(t, w, 2)
	assert.Equal(t, 9, w[0].Start.Hour())
	assert.Equal(t, 17, w[1].End.Hour())

	start := monday.Add(11 * time.Hour)
	assert.True(t, IsWithinAvailability(w, start, start.Add(SessionLength)))

	start = monday.Add(11*time.Hour + 30*time.Minute)
	assert.False(t, IsWithinAvailability(w, start, start.Add(SessionLength)))
}
