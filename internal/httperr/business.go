package httperr

import "errors"

type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindUnauthorized
	KindConflict
)

// BusinessError is a rule violation that is reported to the caller as-is.
type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// Message is the human readable text shown to the end user.
func (e BusinessError) Message() string {
	if m, ok := messages[e.Code]; ok {
		return m
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindBadRequest}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Code: code, Kind: KindUnauthorized}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

var messages = map[string]string{
	"tenant_not_found":           "Business not found",
	"package_not_found":          "Package not found",
	"coupon_not_found":           "Invalid coupon code",
	"coupon_not_yet_valid":       "Coupon not yet valid",
	"coupon_expired":             "Coupon expired",
	"coupon_usage_limit_reached": "Coupon usage limit reached",
	"purchase_not_found":         "Purchase not found",
	"purchase_not_active":        "Purchase is not active",
	"no_sessions_remaining":      "No sessions remaining on this purchase",
	"appointment_not_found":      "Appointment not found",
	"invalid_status":             "Invalid status",
	"invalid_payment_method":     "Invalid payment method",
	"invalid_sessions_remaining": "Sessions remaining must not exceed sessions total",
	"invalid_customer":           "Customer name, email and phone are required",
	"missing_email":              "Email is required",
	"invalid_code":               "Coupon code is required",
	"invalid_date_or_time":       "Invalid date or time",
	"slot_unavailable":           "The selected time is not available",
	"booking_disabled":           "Online booking is disabled for this business",
	"request_in_progress":        "A request with this idempotency key is already being processed",
	"duplicate_code":             "Coupon code already exists",
	"slug_already_exists":        "Business slug already taken",
	"email_already_exists":       "Email already registered",
	"invalid_credentials":        "Invalid email or password",
	"owner_only":                 "Only the business owner can do this",
	"invalid_token":              "Invalid or expired token",
	"invalid_price":              "Price must be greater than zero",
	"invalid_sessions":           "A package needs at least one session",
	"invalid_discount_type":      "Type must be percentage or fixed",
	"invalid_discount_value":     "Percentages must be between 0 and 100 and amounts must not be negative",
	"invalid_max_uses":           "Max uses must not be negative",
	"invalid_validity_window":    "Valid until must be after valid from",
	"affiliate_not_found":        "Affiliate not found",
}
