package checkout

import (
	"context"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type UpdateSessionsRemaining struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSessionsRemaining(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSessionsRemaining {
	return &UpdateSessionsRemaining{repo: repo, audit: audit}
}

func (uc *UpdateSessionsRemaining) Execute(
	ctx context.Context,
	tenantID string,
	userID string,
	purchaseID string,
	remaining int,
) (*models.Purchase, error) {

	p, err := uc.repo.GetPurchase(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrNotFound("purchase_not_found")
	}

	previous := p.SessionsRemaining
	if err := domain.ApplySessionsRemaining(p, remaining); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePurchase(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "purchase_sessions_updated",
		Entity:   "purchase",
		EntityID: &p.ID,
		Metadata: map[string]any{"from": previous, "to": p.SessionsRemaining},
	})

	return p, nil
}
