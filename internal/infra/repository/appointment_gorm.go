package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTenantByID(
	ctx context.Context,
	id string,
) (*models.Tenant, error) {
	return firstOrNil[models.Tenant](r.db.WithContext(ctx).Where("id = ?", id))
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAvailableSlots(
	ctx context.Context,
	tenantID string,
) ([]models.AvailableSlot, error) {

	var slots []models.AvailableSlot
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error

	return slots, err
}

func (r *AppointmentGormRepository) IsDateBlocked(
	ctx context.Context,
	tenantID string,
	dayStart time.Time,
	dayEnd time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlockedDate{}).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, dayStart, dayEnd).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	tenantID string,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"tenant_id = ? AND status <> ? AND scheduled_at >= ? AND scheduled_at < ?",
			tenantID, string(domain.StatusCancelled), start, end,
		).
		Order("scheduled_at ASC").
		Pluck("scheduled_at", &times).Error

	return times, err
}

// --------------------------------------------------
// Purchase
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPurchase(
	ctx context.Context,
	tenantID string,
	purchaseID string,
) (*models.Purchase, error) {
	return firstOrNil[models.Purchase](
		r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", purchaseID, tenantID),
	)
}

func (r *AppointmentGormRepository) UpdatePurchase(
	ctx context.Context,
	p *models.Purchase,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantID string,
	appointmentID string,
) (*models.Appointment, error) {
	return firstOrNil[models.Appointment](
		r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", appointmentID, tenantID),
	)
}

func (r *AppointmentGormRepository) GetUnscheduledAppointment(
	ctx context.Context,
	purchaseID string,
) (*models.Appointment, error) {
	return firstOrNil[models.Appointment](
		r.db.WithContext(ctx).
			Where("purchase_id = ? AND scheduled_at IS NULL AND status = ?",
				purchaseID, string(domain.StatusPending)),
	)
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) AssertSlotFree(
	ctx context.Context,
	tenantID string,
	start time.Time,
	end time.Time,
) error {

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"tenant_id = ? AND status <> ? AND scheduled_at > ? AND scheduled_at < ?",
			tenantID,
			string(domain.StatusCancelled),
			start.Add(-domain.SessionLength),
			end,
		).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	if len(ids) > 0 {
		return httperr.ErrConflict("slot_unavailable")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPurchase(
	ctx context.Context,
	purchaseID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("scheduled_at ASC NULLS LAST, created_at ASC").
		Find(&apps).Error

	return apps, err
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	tenantID string,
	start time.Time,
	end time.Time,
) ([]domain.AppointmentRow, error) {

	var rows []domain.AppointmentRow
	err := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(`a.*,
			p.customer_name AS customer_name,
			p.customer_email AS customer_email,
			p.customer_phone AS customer_phone,
			sp.name AS package_name`).
		Joins("JOIN purchases p ON p.id = a.purchase_id").
		Joins("LEFT JOIN service_packages sp ON sp.id = p.package_id").
		Where(
			"a.tenant_id = ? AND a.scheduled_at >= ? AND a.scheduled_at < ?",
			tenantID, start, end,
		).
		Order("a.scheduled_at ASC").
		Scan(&rows).Error

	return rows, err
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
