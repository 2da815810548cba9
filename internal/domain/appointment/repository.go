package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// Repository is the persistence port for scheduling.
// Getters return (nil, nil) when no row matches.
type Repository interface {
	// -------- Tenant --------
	GetTenantByID(ctx context.Context, id string) (*models.Tenant, error)

	// -------- Availability --------
	ListAvailableSlots(ctx context.Context, tenantID string) ([]models.AvailableSlot, error)
	IsDateBlocked(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) (bool, error)

	ListBookedTimes(
		ctx context.Context,
		tenantID string,
		start time.Time,
		end time.Time,
	) ([]time.Time, error)

	// -------- Purchase --------
	GetPurchase(ctx context.Context, tenantID, purchaseID string) (*models.Purchase, error)
	UpdatePurchase(ctx context.Context, p *models.Purchase) error

	// -------- Appointment --------
	GetAppointment(ctx context.Context, tenantID, appointmentID string) (*models.Appointment, error)

	// GetUnscheduledAppointment returns the pending placeholder of a purchase.
	GetUnscheduledAppointment(ctx context.Context, purchaseID string) (*models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// AssertSlotFree fails with slot_unavailable when a non-cancelled
	// appointment of the tenant overlaps [start, end). Rows it finds are
	// locked inside a transaction, but an empty slot is not: two bookings
	// racing for the same free slot can both pass.
	AssertSlotFree(ctx context.Context, tenantID string, start, end time.Time) error

	ListAppointmentsForPurchase(ctx context.Context, purchaseID string) ([]models.Appointment, error)
	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID string,
		start time.Time,
		end time.Time,
	) ([]AppointmentRow, error)

	Transaction(ctx context.Context, fn func(tx Repository) error) error
}

// AppointmentRow is an appointment joined with its purchase and package for
// the owner calendar.
type AppointmentRow struct {
	models.Appointment
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PackageName   string
}
