package checkout

import (
	"context"
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type ValidateCouponInput struct {
	TenantSlug string
	Code       string

	// PackageID is optional; when set the result carries a price quote.
	PackageID string
}

type ValidateCouponResult struct {
	Coupon *models.Coupon
	Quote  *pricing.Quote
}

// ValidateCoupon checks a code for the storefront without consuming it.
type ValidateCoupon struct {
	repo domain.Repository
	calc pricing.Calculator
	now  func() time.Time
}

func NewValidateCoupon(repo domain.Repository, calc pricing.Calculator) *ValidateCoupon {
	return &ValidateCoupon{repo: repo, calc: calc, now: time.Now}
}

func (uc *ValidateCoupon) Execute(
	ctx context.Context,
	in ValidateCouponInput,
) (*ValidateCouponResult, error) {

	tenant, err := uc.repo.GetTenantBySlug(ctx, in.TenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}

	coupon, err := pricing.ResolveCoupon(ctx, uc.repo, tenant.ID, in.Code, uc.now())
	if err != nil {
		return nil, err
	}

	out := &ValidateCouponResult{Coupon: coupon}

	if in.PackageID != "" {
		pkg, err := uc.repo.GetActivePackage(ctx, tenant.ID, in.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, httperr.ErrNotFound("package_not_found")
		}
		q := uc.calc.Quote(pkg.Price, coupon)
		out.Quote = &q
	}

	return out, nil
}
