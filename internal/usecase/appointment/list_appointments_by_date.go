package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/dto"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	tenantID string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}

	start, end := timezone.DayBounds(date, timezone.Location(tenant.Timezone))

	rows, err := uc.repo.ListAppointmentsForPeriod(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTO(rows), nil
}

func toListDTO(rows []domain.AppointmentRow) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AppointmentListDTO{
			ID:            r.ID,
			PurchaseID:    r.PurchaseID,
			ScheduledAt:   r.ScheduledAt,
			Duration:      r.Duration,
			Status:        r.Status,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			CustomerPhone: r.CustomerPhone,
			PackageName:   r.PackageName,
			CustomerNotes: r.CustomerNotes,
			StaffNotes:    r.StaffNotes,
		})
	}
	return out
}
