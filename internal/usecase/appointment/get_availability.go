package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists the session start times of one day. Times that are booked
// or already past are returned with Available=false; blocked days and days
// without opening hours yield no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	dayStart, dayEnd := timezone.DayBounds(in.Date, in.Date.Location())

	blocked, err := uc.repo.IsDateBlocked(ctx, in.TenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if blocked {
		return []domain.TimeSlot{}, nil
	}

	rows, err := uc.repo.ListAvailableSlots(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	windows := domain.WindowsForDay(rows, dayStart)
	if len(windows) == 0 {
		return []domain.TimeSlot{}, nil
	}

	booked, err := uc.repo.ListBookedTimes(ctx, in.TenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	date := dayStart.Format("2006-01-02")
	slots := []domain.TimeSlot{}

	for _, w := range windows {
		for cur := w.Start; !cur.Add(domain.SessionLength).After(w.End); cur = cur.Add(domain.SessionLength) {
			slots = append(slots, domain.TimeSlot{
				Date:      date,
				Time:      cur.Format("15:04"),
				Available: cur.After(now) && !overlapsBooking(booked, cur),
			})
		}
	}

	return slots, nil
}

func overlapsBooking(booked []time.Time, start time.Time) bool {
	end := start.Add(domain.SessionLength)
	for _, b := range booked {
		if b.Before(end) && b.Add(domain.SessionLength).After(start) {
			return true
		}
	}
	return false
}
