package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// CouponFinder looks up an active coupon of a tenant by normalised code.
// It returns (nil, nil) when nothing matches.
type CouponFinder interface {
	GetActiveCoupon(ctx context.Context, tenantID, code string) (*models.Coupon, error)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckValidity applies the time window and usage cap to a resolved coupon.
func CheckValidity(c *models.Coupon, now time.Time) error {
	if c == nil || !c.IsActive {
		return httperr.ErrNotFound("coupon_not_found")
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return httperr.ErrBusiness("coupon_not_yet_valid")
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return httperr.ErrBusiness("coupon_expired")
	}
	if c.MaxUses != nil && c.UsesCount >= *c.MaxUses {
		return httperr.ErrBusiness("coupon_usage_limit_reached")
	}
	return nil
}

// ResolveCoupon finds code among the tenant's active coupons and validates
// it at now. It never mutates the coupon.
func ResolveCoupon(
	ctx context.Context,
	finder CouponFinder,
	tenantID string,
	code string,
	now time.Time,
) (*models.Coupon, error) {

	code = NormalizeCode(code)
	if code == "" {
		return nil, httperr.ErrBusiness("invalid_code")
	}

	c, err := finder.GetActiveCoupon(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, httperr.ErrNotFound("coupon_not_found")
	}

	if err := CheckValidity(c, now); err != nil {
		return nil, err
	}
	return c, nil
}
