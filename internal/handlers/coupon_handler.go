package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type CouponHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCouponHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CouponHandler {
	return &CouponHandler{db: db, audit: dispatcher}
}

type CouponRequest struct {
	Code            *string    `json:"code"`
	AffiliateID     *string    `json:"affiliate_id"`
	DiscountType    *string    `json:"discount_type"`
	DiscountValue   *int64     `json:"discount_value"`
	CommissionType  *string    `json:"commission_type"`
	CommissionValue *int64     `json:"commission_value"`
	MaxUses         *int       `json:"max_uses"`
	ValidFrom       *time.Time `json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until"`
	IsActive        *bool      `json:"is_active"`
}

func (req *CouponRequest) apply(cp *models.Coupon) {
	if req.Code != nil {
		cp.Code = pricing.NormalizeCode(*req.Code)
	}
	if req.AffiliateID != nil {
		if *req.AffiliateID == "" {
			cp.AffiliateID = nil
		} else {
			cp.AffiliateID = req.AffiliateID
		}
	}
	if req.DiscountType != nil {
		cp.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		cp.DiscountValue = *req.DiscountValue
	}
	if req.CommissionType != nil {
		cp.CommissionType = *req.CommissionType
	}
	if req.CommissionValue != nil {
		cp.CommissionValue = *req.CommissionValue
	}
	if req.MaxUses != nil {
		cp.MaxUses = req.MaxUses
	}
	if req.ValidFrom != nil {
		cp.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		cp.ValidUntil = req.ValidUntil
	}
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
	}
}

// validateCoupon checks the rule fields of a coupon before it is stored.
func validateCoupon(cp *models.Coupon) error {
	if cp.Code == "" {
		return httperr.ErrBusiness("invalid_code")
	}
	if !pricing.ValidType(cp.DiscountType) || !pricing.ValidType(cp.CommissionType) {
		return httperr.ErrBusiness("invalid_discount_type")
	}
	if cp.DiscountValue < 0 || cp.CommissionValue < 0 {
		return httperr.ErrBusiness("invalid_discount_value")
	}
	if cp.DiscountType == pricing.TypePercentage && cp.DiscountValue > 100 {
		return httperr.ErrBusiness("invalid_discount_value")
	}
	if cp.CommissionType == pricing.TypePercentage && cp.CommissionValue > 100 {
		return httperr.ErrBusiness("invalid_discount_value")
	}
	if cp.MaxUses != nil && *cp.MaxUses < 0 {
		return httperr.ErrBusiness("invalid_max_uses")
	}
	if cp.ValidFrom != nil && cp.ValidUntil != nil && cp.ValidUntil.Before(*cp.ValidFrom) {
		return httperr.ErrBusiness("invalid_validity_window")
	}
	return nil
}

func (h *CouponHandler) List(c *gin.Context) {
	var coupons []models.Coupon
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {

		httperr.Internal(c, "failed_to_list_coupons", "Failed to list coupons")
		return
	}
	httpresp.List(c, coupons)
}

func (h *CouponHandler) Create(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	cp := models.Coupon{
		TenantID:       tenantID,
		DiscountType:   pricing.TypePercentage,
		CommissionType: pricing.TypePercentage,
		IsActive:       true,
	}
	req.apply(&cp)

	if !h.save(c, &cp, true) {
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "coupon_created",
		Entity:   "coupon",
		EntityID: &cp.ID,
		Metadata: map[string]any{"code": cp.Code},
	})

	httpresp.Created(c, cp)
}

func (h *CouponHandler) Update(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var cp models.Coupon
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&cp).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "coupon_not_found", "Coupon not found")
			return
		}
		httperr.Internal(c, "failed_to_get_coupon", "Failed to load coupon")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	req.apply(&cp)

	if !h.save(c, &cp, false) {
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "coupon_updated",
		Entity:   "coupon",
		EntityID: &cp.ID,
	})

	c.JSON(http.StatusOK, cp)
}

var couponEditableColumns = []string{
	"code", "affiliate_id",
	"discount_type", "discount_value",
	"commission_type", "commission_value",
	"max_uses", "valid_from", "valid_until",
	"is_active", "updated_at",
}

func (h *CouponHandler) save(c *gin.Context, cp *models.Coupon, create bool) bool {
	if err := validateCoupon(cp); err != nil {
		httperr.Respond(c, err, "invalid_request")
		return false
	}

	db := h.db.WithContext(c.Request.Context())

	if cp.AffiliateID != nil {
		var count int64
		if err := db.Model(&models.Affiliate{}).
			Where("id = ? AND tenant_id = ?", *cp.AffiliateID, cp.TenantID).
			Count(&count).Error; err != nil {

			httperr.Internal(c, "failed_to_save_coupon", "Failed to save coupon")
			return false
		}
		if count == 0 {
			httperr.NotFound(c, "affiliate_not_found", "Affiliate not found")
			return false
		}
	}

	var err error
	if create {
		err = db.Create(cp).Error
	} else {
		// uses_count is only moved by checkout's conditional increment.
		err = db.Model(cp).Select(couponEditableColumns).Updates(cp).Error
	}
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "duplicate_code", "Coupon code already exists")
			return false
		}
		httperr.Internal(c, "failed_to_save_coupon", "Failed to save coupon")
		return false
	}
	return true
}
