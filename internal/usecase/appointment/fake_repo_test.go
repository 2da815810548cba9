package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	tenant       models.Tenant
	slots        []models.AvailableSlot
	blocked      []models.BlockedDate
	purchases    []models.Purchase
	appointments []models.Appointment
}

// newFakeRepo opens Monday to Friday 09:00-17:00 in Nairobi.
func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		tenant: models.Tenant{ID: "tenant-1", Slug: "inklessismore", Timezone: "Africa/Nairobi", BookingEnabled: true},
	}
	for d := 1; d <= 5; d++ {
		r.slots = append(r.slots, models.AvailableSlot{TenantID: "tenant-1", DayOfWeek: d, StartTime: "09:00", EndTime: "17:00", IsActive: true})
	}
	return r
}

func (r *fakeRepo) addPurchase(p models.Purchase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.TenantID == "" {
		p.TenantID = "tenant-1"
	}
	r.purchases = append(r.purchases, p)
	r.appointments = append(r.appointments, models.Appointment{
		ID: "placeholder-" + p.ID, TenantID: p.TenantID, PurchaseID: p.ID, Status: "pending", Duration: 60,
	})
}

func (r *fakeRepo) purchase(id string) models.Purchase {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id {
			return p
		}
	}
	return models.Purchase{}
}

func (r *fakeRepo) GetTenantByID(_ context.Context, id string) (*models.Tenant, error) {
	if id != r.tenant.ID {
		return nil, nil
	}
	t := r.tenant
	return &t, nil
}

func (r *fakeRepo) ListAvailableSlots(_ context.Context, tenantID string) ([]models.AvailableSlot, error) {
	return r.slots, nil
}

func (r *fakeRepo) IsDateBlocked(_ context.Context, tenantID string, start, end time.Time) (bool, error) {
	for _, b := range r.blocked {
		if !b.Date.Before(start) && b.Date.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListBookedTimes(_ context.Context, tenantID string, start, end time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for _, ap := range r.appointments {
		if ap.ScheduledAt == nil || ap.Status == "cancelled" {
			continue
		}
		if !ap.ScheduledAt.Before(start) && ap.ScheduledAt.Before(end) {
			out = append(out, *ap.ScheduledAt)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetPurchase(_ context.Context, tenantID, id string) (*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id && p.TenantID == tenantID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) UpdatePurchase(_ context.Context, p *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.purchases {
		if r.purchases[i].ID == p.ID {
			r.purchases[i] = *p
		}
	}
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, tenantID, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id && ap.TenantID == tenantID {
			ap := ap
			return &ap, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetUnscheduledAppointment(_ context.Context, purchaseID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.PurchaseID == purchaseID && ap.ScheduledAt == nil && ap.Status == "pending" {
			ap := ap
			return &ap, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
		}
	}
	return nil
}

func (r *fakeRepo) AssertSlotFree(ctx context.Context, tenantID string, start, end time.Time) error {
	times, _ := r.ListBookedTimes(ctx, tenantID, start.Add(-domain.SessionLength+time.Nanosecond), end)
	if len(times) > 0 {
		return httperr.ErrConflict("slot_unavailable")
	}
	return nil
}

func (r *fakeRepo) ListAppointmentsForPurchase(_ context.Context, purchaseID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PurchaseID == purchaseID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, tenantID string, start, end time.Time) ([]domain.AppointmentRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AppointmentRow
	for _, ap := range r.appointments {
		if ap.ScheduledAt == nil || ap.ScheduledAt.Before(start) || !ap.ScheduledAt.Before(end) {
			continue
		}
		row := domain.AppointmentRow{Appointment: ap}
		for _, p := range r.purchases {
			if p.ID == ap.PurchaseID {
				row.CustomerName = p.CustomerName
				row.CustomerEmail = p.CustomerEmail
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	purchases := append([]models.Purchase(nil), r.purchases...)
	appointments := append([]models.Appointment(nil), r.appointments...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.purchases, r.appointments = purchases, appointments
		r.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
