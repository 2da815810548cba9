package checkout

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// GetCustomerPurchases lists the purchases made with an email address at
// one business, newest first.
type GetCustomerPurchases struct {
	repo domain.Repository
}

func NewGetCustomerPurchases(repo domain.Repository) *GetCustomerPurchases {
	return &GetCustomerPurchases{repo: repo}
}

func (uc *GetCustomerPurchases) Execute(
	ctx context.Context,
	tenantSlug string,
	email string,
) ([]models.Purchase, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, httperr.ErrBusiness("invalid_customer")
	}

	tenant, err := uc.repo.GetTenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}

	return uc.repo.ListPurchasesByCustomer(ctx, tenant.ID, email)
}

type ListPurchases struct {
	repo domain.Repository
}

func NewListPurchases(repo domain.Repository) *ListPurchases {
	return &ListPurchases{repo: repo}
}

func (uc *ListPurchases) Execute(
	ctx context.Context,
	tenantID string,
	f domain.ListFilter,
) ([]models.Purchase, error) {

	if f.Status != "" && !domain.ValidStatus(f.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	return uc.repo.ListPurchases(ctx, tenantID, f)
}
