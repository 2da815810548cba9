package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

type finderFunc func(ctx context.Context, tenantID, code string) (*models.Coupon, error)

func (f finderFunc) GetActiveCoupon(ctx context.Context, tenantID, code string) (*models.Coupon, error) {
	return f(ctx, tenantID, code)
}

func TestComputeDiscount_PercentageFloors(t *testing.T) {
	coupon := &models.Coupon{DiscountType: TypePercentage, DiscountValue: 15}

	q := ComputeDiscount(999, coupon)

	assert.Equal(t, int64(149), q.DiscountAmount) // 149.85 floored
	assert.Equal(t, int64(850), q.FinalPrice)
}

func TestComputeDiscount_PercentageNeverExceedsPrice(t *testing.T) {
	prices := []int64{1, 7, 99, 450000, 1000000, 1500001}
	for v := int64(0); v <= 100; v++ {
		coupon := &models.Coupon{DiscountType: TypePercentage, DiscountValue: v}
		for _, p := range prices {
			q := ComputeDiscount(p, coupon)
			assert.Equal(t, p*v/100, q.DiscountAmount)
			assert.LessOrEqual(t, q.DiscountAmount, p)
			assert.GreaterOrEqual(t, q.FinalPrice, int64(0))
		}
	}
}

func TestComputeDiscount_FixedIsNotClamped(t *testing.T) {
	coupon := &models.Coupon{DiscountType: TypeFixed, DiscountValue: 500}

	q := ComputeDiscount(300, coupon)

	assert.Equal(t, int64(500), q.DiscountAmount)
	assert.Equal(t, int64(-200), q.FinalPrice)
}

func TestCalculator_ClampFloorsAtZero(t *testing.T) {
	coupon := &models.Coupon{DiscountType: TypeFixed, DiscountValue: 500}

	q := NewCalculator(true).Quote(300, coupon)
	assert.Equal(t, int64(300), q.DiscountAmount)
	assert.Equal(t, int64(0), q.FinalPrice)

	q = NewCalculator(false).Quote(300, coupon)
	assert.Equal(t, int64(-200), q.FinalPrice)
}

func TestComputeDiscount_NilCoupon(t *testing.T) {
	q := ComputeDiscount(450000, nil)

	assert.Equal(t, Quote{BasePrice: 450000, FinalPrice: 450000}, q)
}

func TestComputeDiscount_AffiliateScenario(t *testing.T) {
	coupon := &models.Coupon{
		Code:          "AFFILIATE10",
		DiscountType:  TypePercentage,
		DiscountValue: 10,
		MaxUses:       intPtr(100),
		UsesCount:     45,
		IsActive:      true,
	}

	require.NoError(t, CheckValidity(coupon, time.Now()))

	q := ComputeDiscount(1000000, coupon)
	assert.Equal(t, int64(100000), q.DiscountAmount)
	assert.Equal(t, int64(900000), q.FinalPrice)
}

func TestCommission(t *testing.T) {
	pct := &models.Coupon{AffiliateID: strPtr("aff-1"), CommissionType: TypePercentage, CommissionValue: 5}
	fixed := &models.Coupon{AffiliateID: strPtr("aff-1"), CommissionType: TypeFixed, CommissionValue: 20000}
	orphan := &models.Coupon{CommissionType: TypePercentage, CommissionValue: 5}

	assert.Equal(t, int64(45000), Commission(900000, pct))
	assert.Equal(t, int64(20000), Commission(900000, fixed))
	assert.Equal(t, int64(0), Commission(900000, orphan))
	assert.Equal(t, int64(0), Commission(-100, pct))
	assert.Equal(t, int64(0), Commission(900000, nil))
}

func TestCheckValidity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		coupon models.Coupon
		code   string
	}{
		{"not yet valid", models.Coupon{IsActive: true, ValidFrom: timePtr(now.Add(time.Hour))}, "coupon_not_yet_valid"},
		{"expired", models.Coupon{IsActive: true, ValidUntil: timePtr(now.Add(-time.Second))}, "coupon_expired"},
		{"usage cap", models.Coupon{IsActive: true, MaxUses: intPtr(200), UsesCount: 200}, "coupon_usage_limit_reached"},
		{"inactive", models.Coupon{IsActive: false}, "coupon_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckValidity(&tc.coupon, now)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestCheckValidity_OpenWindowOnlyCapApplies(t *testing.T) {
	now := time.Now()
	c := &models.Coupon{IsActive: true, MaxUses: intPtr(3), UsesCount: 2}

	assert.NoError(t, CheckValidity(c, now))
	assert.NoError(t, CheckValidity(&models.Coupon{IsActive: true}, now))

	c.UsesCount = 3
	assert.Error(t, CheckValidity(c, now))
}

func TestCheckValidity_BoundariesAreInclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := &models.Coupon{IsActive: true, ValidFrom: timePtr(now), ValidUntil: timePtr(now)}

	assert.NoError(t, CheckValidity(c, now))
}

func TestResolveCoupon_NormalisesCode(t *testing.T) {
	var gotCode, gotTenant string
	finder := finderFunc(func(_ context.Context, tenantID, code string) (*models.Coupon, error) {
		gotTenant, gotCode = tenantID, code
		return &models.Coupon{Code: code, IsActive: true}, nil
	})

	c, err := ResolveCoupon(context.Background(), finder, "tenant-1", "  affiliate10 ", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "AFFILIATE10", gotCode)
	assert.Equal(t, "tenant-1", gotTenant)
	assert.Equal(t, "AFFILIATE10", c.Code)
}

func TestResolveCoupon_Errors(t *testing.T) {
	none := finderFunc(func(context.Context, string, string) (*models.Coupon, error) { return nil, nil })
	broken := finderFunc(func(context.Context, string, string) (*models.Coupon, error) {
		return nil, errors.New("db down")
	})

	_, err := ResolveCoupon(context.Background(), none, "t", "   ", time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_code"))

	_, err = ResolveCoupon(context.Background(), none, "t", "NOPE", time.Now())
	assert.True(t, httperr.IsBusiness(err, "coupon_not_found"))

	_, err = ResolveCoupon(context.Background(), broken, "t", "X", time.Now())
	assert.EqualError(t, err, "db down")
}

func TestResolveCoupon_WelcomeExhausted(t *testing.T) {
	finder := finderFunc(func(context.Context, string, string) (*models.Coupon, error) {
		return &models.Coupon{
			Code:          "WELCOME500",
			DiscountType:  TypeFixed,
			DiscountValue: 500,
			MaxUses:       intPtr(200),
			UsesCount:     200,
			IsActive:      true,
		}, nil
	})

	_, err := ResolveCoupon(context.Background(), finder, "t", "welcome500", time.Now())

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "coupon_usage_limit_reached", be.Code)
	assert.Equal(t, "Coupon usage limit reached", be.Message())
}
