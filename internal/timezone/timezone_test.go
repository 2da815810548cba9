package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "Africa/Nairobi", Location("").String())
	assert.Equal(t, "Africa/Nairobi", Location("Mars/Olympus").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())

	assert.True(t, IsValid("Europe/Lisbon"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("nope"))
}

func TestDayBounds(t *testing.T) {
	nairobi := Location(DefaultTimezone)
	at := time.Date(2025, 3, 3, 14, 30, 0, 0, nairobi)

	start, end := DayBounds(at, nairobi)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, nairobi), start)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, nairobi), end)
}
