package handlers

import (
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

// tenantLocation resolves the official timezone of the business.
func tenantLocation(t *models.Tenant) *time.Location {
	if t == nil {
		return timezone.Location(timezone.DefaultTimezone)
	}
	return timezone.Location(t.Timezone)
}

func parseDateInTenant(t *models.Tenant, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		tenantLocation(t),
	)
}

// parseOptionalDate returns nil for an empty or malformed value.
func parseOptionalDate(t *models.Tenant, dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	d, err := parseDateInTenant(t, dateStr)
	if err != nil {
		return nil
	}
	return &d
}
