package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	apptDomain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	purchaseDomain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/payment"
	"github.com/BruksfildServices01/inkless-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/usecase/checkout"
)

const IdempotencyHeader = "Idempotency-Key"

// CheckoutOptions tunes the purchase flow.
type CheckoutOptions struct {
	Calculator   pricing.Calculator
	Idempotency  checkout.IdempotencyStore // optional
	Payments     *payment.Registry         // optional
	ValidityDays int
	Log          *zap.Logger
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the storefront: coupons, checkout, the customer's
// purchases and session booking. Every route is scoped by tenant slug.
type PublicHandler struct {
	db *gorm.DB

	validateCoupon *checkout.ValidateCoupon
	createPurchase *checkout.CreatePurchase
	myPurchases    *checkout.GetCustomerPurchases

	availability *appointment.GetAvailability
	book         *appointment.BookSession
	appointments *appointment.ListPurchaseAppointments
}

func NewPublicHandler(
	db *gorm.DB,
	purchases purchaseDomain.Repository,
	appointments apptDomain.Repository,
	dispatcher *audit.Dispatcher,
	opts CheckoutOptions,
) *PublicHandler {
	create := checkout.NewCreatePurchase(purchases, opts.Calculator, dispatcher, opts.Log).
		WithPayments(opts.Payments).
		WithValidityDays(opts.ValidityDays)
	if opts.Idempotency != nil {
		create = create.WithIdempotency(opts.Idempotency)
	}

	return &PublicHandler{
		db:             db,
		validateCoupon: checkout.NewValidateCoupon(purchases, opts.Calculator),
		createPurchase: create,
		myPurchases:    checkout.NewGetCustomerPurchases(purchases),
		availability:   appointment.NewGetAvailability(appointments),
		book:           appointment.NewBookSession(appointments, dispatcher),
		appointments:   appointment.NewListPurchaseAppointments(appointments),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ValidateCouponRequest struct {
	Code      string `json:"code" binding:"required"`
	PackageID string `json:"package_id"`
}

type CreatePurchaseRequest struct {
	PackageID     string `json:"package_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	CouponCode    string `json:"coupon_code"`
}

type BookSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// COUPONS
////////////////////////////////////////////////////////

func (h *PublicHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.validateCoupon.Execute(c.Request.Context(), checkout.ValidateCouponInput{
		TenantSlug: c.Param("slug"),
		Code:       req.Code,
		PackageID:  req.PackageID,
	})
	if err != nil {
		httperr.Respond(c, err, "coupon_validation_failed")
		return
	}

	body := gin.H{
		"valid":          true,
		"code":           res.Coupon.Code,
		"discount_type":  res.Coupon.DiscountType,
		"discount_value": res.Coupon.DiscountValue,
	}
	if res.Quote != nil {
		body["quote"] = res.Quote
	}
	c.JSON(http.StatusOK, body)
}

////////////////////////////////////////////////////////
// CHECKOUT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreatePurchase(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.createPurchase.Execute(c.Request.Context(), checkout.CreatePurchaseInput{
		TenantSlug:     c.Param("slug"),
		PackageID:      req.PackageID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		PaymentMethod:  strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
		CouponCode:     req.CouponCode,
		IdempotencyKey: c.GetHeader(IdempotencyHeader),
	})
	if err != nil {
		httperr.Respond(c, err, "purchase_failed")
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}

	c.JSON(status, gin.H{
		"purchase": res.Purchase,
		"quote":    res.Quote,
		"payment":  res.Handoff,
		"replayed": res.Replayed,
	})
}

// MyPurchases lists purchases by customer email (?email=).
func (h *PublicHandler) MyPurchases(c *gin.Context) {
	purchases, err := h.myPurchases.Execute(c.Request.Context(), c.Param("slug"), c.Query("email"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_purchases")
		return
	}
	httpresp.List(c, purchases)
}

////////////////////////////////////////////////////////
// APPOINTMENTS
////////////////////////////////////////////////////////

func (h *PublicHandler) PurchaseAppointments(c *gin.Context) {
	tenant := loadTenantBySlug(c, h.db, c.Param("slug"))
	if tenant == nil {
		return
	}

	apps, err := h.appointments.Execute(c.Request.Context(), tenant.ID, c.Param("id"), c.Query("email"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, apps)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required")
		return
	}

	tenant := loadTenantBySlug(c, h.db, c.Param("slug"))
	if tenant == nil {
		return
	}

	date, err := parseDateInTenant(tenant, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), apptDomain.AvailabilityInput{
		TenantID: tenant.ID,
		Date:     date,
		Now:      time.Now().In(tenantLocation(tenant)),
	})
	if err != nil {
		httperr.Respond(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            dateStr,
		"booking_enabled": tenant.BookingEnabled,
		"slots":           slots,
	})
}

func (h *PublicHandler) BookSession(c *gin.Context) {
	tenant := loadTenantBySlug(c, h.db, c.Param("slug"))
	if tenant == nil {
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), appointment.BookSessionInput{
		TenantID:   tenant.ID,
		PurchaseID: c.Param("id"),
		Email:      req.Email,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "booking_failed")
		return
	}

	httpresp.Created(c, ap)
}
