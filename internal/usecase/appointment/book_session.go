package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookSessionInput struct {
	TenantID   string
	PurchaseID string
	Email      string

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// BookSession lets a customer schedule one session of a purchase. The
// purchase's pending placeholder is filled first; later sessions get a new
// appointment row.
type BookSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewBookSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookSession {
	return &BookSession{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSession) Execute(
	ctx context.Context,
	in BookSessionInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Tenant
	// --------------------------------------------------
	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}
	if !tenant.BookingEnabled {
		return nil, httperr.ErrBusiness("booking_disabled")
	}

	// --------------------------------------------------
	// 2. Date / time in the tenant timezone
	// --------------------------------------------------
	loc := timezone.Location(tenant.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start.Add(domain.SessionLength)

	var booked *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 3. Purchase ownership and balance
		// --------------------------------------------------
		p, err := tx.GetPurchase(ctx, tenant.ID, in.PurchaseID)
		if err != nil {
			return err
		}
		if p == nil || !strings.EqualFold(p.CustomerEmail, strings.TrimSpace(in.Email)) {
			return httperr.ErrNotFound("purchase_not_found")
		}
		if err := purchase.CanBook(p); err != nil {
			return err
		}

		existing, err := tx.ListAppointmentsForPurchase(ctx, p.ID)
		if err != nil {
			return err
		}
		if upcoming(existing) >= p.SessionsRemaining {
			return httperr.ErrBusiness("no_sessions_remaining")
		}

		// --------------------------------------------------
		// 4. Opening hours, blocked days, conflicts
		// --------------------------------------------------
		dayStart, dayEnd := timezone.DayBounds(start, loc)
		blocked, err := tx.IsDateBlocked(ctx, tenant.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if blocked {
			return httperr.ErrConflict("slot_unavailable")
		}

		rows, err := tx.ListAvailableSlots(ctx, tenant.ID)
		if err != nil {
			return err
		}
		if !domain.IsWithinAvailability(domain.WindowsForDay(rows, dayStart), start, end) {
			return httperr.ErrConflict("slot_unavailable")
		}

		if err := tx.AssertSlotFree(ctx, tenant.ID, start, end); err != nil {
			return err
		}

		// --------------------------------------------------
		// 5. Fill the placeholder or add a session
		// --------------------------------------------------
		ap, err := tx.GetUnscheduledAppointment(ctx, p.ID)
		if err != nil {
			return err
		}

		if ap != nil {
			domain.Schedule(ap, start, in.Notes)
			if err := tx.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
		} else {
			ap = &models.Appointment{TenantID: tenant.ID, PurchaseID: p.ID}
			domain.Schedule(ap, start, in.Notes)
			if err := tx.CreateAppointment(ctx, ap); err != nil {
				return err
			}
		}

		booked = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &booked.ID,
		Metadata: map[string]any{"purchase_id": in.PurchaseID, "scheduled_at": start},
	})

	return booked, nil
}

// upcoming counts sessions already scheduled and not yet consumed.
func upcoming(apps []models.Appointment) int {
	n := 0
	for _, ap := range apps {
		if ap.ScheduledAt == nil {
			continue
		}
		switch domain.Status(ap.Status) {
		case domain.StatusPending, domain.StatusConfirmed:
			n++
		}
	}
	return n
}
