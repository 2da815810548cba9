package checkout

import (
	"context"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type UpdatePurchaseStatusInput struct {
	TenantID   string
	UserID     string
	PurchaseID string

	Status        *string
	PaymentStatus *string
}

// UpdatePurchaseStatus is the owner's manual write of the purchase and
// payment states, e.g. cancelling or recording a refund.
type UpdatePurchaseStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePurchaseStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePurchaseStatus {
	return &UpdatePurchaseStatus{repo: repo, audit: audit}
}

func (uc *UpdatePurchaseStatus) Execute(
	ctx context.Context,
	in UpdatePurchaseStatusInput,
) (*models.Purchase, error) {

	if in.Status != nil && !domain.ValidStatus(*in.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if in.PaymentStatus != nil && !domain.ValidPaymentStatus(*in.PaymentStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	p, err := uc.repo.GetPurchase(ctx, in.TenantID, in.PurchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrNotFound("purchase_not_found")
	}

	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		p.PaymentStatus = *in.PaymentStatus
	}

	if err := uc.repo.UpdatePurchase(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "purchase_status_updated",
		Entity:   "purchase",
		EntityID: &p.ID,
		Metadata: map[string]any{"status": p.Status, "payment_status": p.PaymentStatus},
	})

	return p, nil
}
