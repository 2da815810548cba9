package pricing

import "github.com/BruksfildServices01/inkless-booking/internal/models"

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

func ValidType(t string) bool {
	return t == TypePercentage || t == TypeFixed
}

// Quote is the outcome of applying a coupon to a package price.
// All amounts are in the currency's smallest unit.
type Quote struct {
	BasePrice      int64 `json:"base_price"`
	DiscountAmount int64 `json:"discount_amount"`
	FinalPrice     int64 `json:"final_price"`
}

// ComputeDiscount applies coupon to basePrice. Percentage discounts are
// floored; fixed discounts are taken as-is, so FinalPrice may be negative.
// A nil coupon yields no discount.
func ComputeDiscount(basePrice int64, coupon *models.Coupon) Quote {
	q := Quote{BasePrice: basePrice, FinalPrice: basePrice}
	if coupon == nil {
		return q
	}

	q.DiscountAmount = ruleAmount(basePrice, coupon.DiscountType, coupon.DiscountValue)
	q.FinalPrice = basePrice - q.DiscountAmount
	return q
}

// Calculator wraps ComputeDiscount with the configurable floor at zero.
type Calculator struct {
	clampToZero bool
}

func NewCalculator(clampToZero bool) Calculator {
	return Calculator{clampToZero: clampToZero}
}

func (c Calculator) Quote(basePrice int64, coupon *models.Coupon) Quote {
	q := ComputeDiscount(basePrice, coupon)
	if c.clampToZero && q.FinalPrice < 0 {
		q.DiscountAmount = basePrice
		q.FinalPrice = 0
	}
	return q
}

// Commission is the affiliate payout owed for a purchase paid amountPaid
// with coupon. Coupons without an affiliate owe nothing.
func Commission(amountPaid int64, coupon *models.Coupon) int64 {
	if coupon == nil || coupon.AffiliateID == nil {
		return 0
	}
	if amountPaid < 0 {
		amountPaid = 0
	}
	return ruleAmount(amountPaid, coupon.CommissionType, coupon.CommissionValue)
}

func ruleAmount(base int64, ruleType string, value int64) int64 {
	switch ruleType {
	case TypePercentage:
		return floorDiv(base*value, 100)
	case TypeFixed:
		return value
	default:
		return 0
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
