package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// ListPurchaseAppointments returns every appointment of a purchase to the
// customer who made it. The email must match the purchase.
type ListPurchaseAppointments struct {
	repo domain.Repository
}

func NewListPurchaseAppointments(repo domain.Repository) *ListPurchaseAppointments {
	return &ListPurchaseAppointments{repo: repo}
}

func (uc *ListPurchaseAppointments) Execute(
	ctx context.Context,
	tenantID string,
	purchaseID string,
	email string,
) ([]models.Appointment, error) {

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, httperr.ErrBusiness("missing_email")
	}

	p, err := uc.repo.GetPurchase(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil || !strings.EqualFold(p.CustomerEmail, email) {
		return nil, httperr.ErrNotFound("purchase_not_found")
	}

	apps, err := uc.repo.ListAppointmentsForPurchase(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}
