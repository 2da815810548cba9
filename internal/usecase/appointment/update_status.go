package appointment

import (
	"context"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

type UpdateStatusInput struct {
	TenantID      string
	UserID        string
	AppointmentID string
	Status        string
	StaffNotes    *string
}

// UpdateAppointmentStatus writes the owner's chosen status. The first time
// an appointment is completed one session is taken off its purchase.
type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}

	var (
		out      *models.Appointment
		consumed bool
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}
		if ap == nil {
			return httperr.ErrNotFound("appointment_not_found")
		}

		consumed = domain.Transition(ap, next, timezone.NowIn(tenant.Timezone))
		if in.StaffNotes != nil {
			ap.StaffNotes = *in.StaffNotes
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if consumed {
			p, err := tx.GetPurchase(ctx, in.TenantID, ap.PurchaseID)
			if err != nil {
				return err
			}
			if p == nil {
				return httperr.ErrNotFound("purchase_not_found")
			}
			if err := purchase.ApplySessionsRemaining(p, p.SessionsRemaining-1); err != nil {
				return err
			}
			if err := tx.UpdatePurchase(ctx, p); err != nil {
				return err
			}
		}

		out = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &out.ID,
		Metadata: map[string]any{"session_consumed": consumed},
	})

	return out, nil
}
