package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type AffiliateHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAffiliateHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AffiliateHandler {
	return &AffiliateHandler{db: db, audit: dispatcher}
}

type AffiliateRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"business_name"`
	IsActive     *bool   `json:"is_active"`
}

// CommissionRow is one line of the affiliate commission report.
type CommissionRow struct {
	AffiliateID     string `json:"affiliate_id"`
	Name            string `json:"name"`
	Purchases       int64  `json:"purchases"`
	AmountPaid      int64  `json:"amount_paid"`
	CommissionTotal int64  `json:"commission_total"`
}

func (req *AffiliateRequest) apply(a *models.Affiliate) {
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		a.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.BusinessName != nil {
		a.BusinessName = *req.BusinessName
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
}

func (h *AffiliateHandler) List(c *gin.Context) {
	var affiliates []models.Affiliate
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("name ASC").
		Find(&affiliates).Error; err != nil {

		httperr.Internal(c, "failed_to_list_affiliates", "Failed to list affiliates")
		return
	}
	httpresp.List(c, affiliates)
}

func (h *AffiliateHandler) Create(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var req AffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	a := models.Affiliate{TenantID: tenantID, IsActive: true}
	req.apply(&a)
	if a.Name == "" {
		httperr.BadRequest(c, "invalid_name", "Name is required")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&a).Error; err != nil {
		httperr.Internal(c, "failed_to_create_affiliate", "Failed to create affiliate")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "affiliate_created",
		Entity:   "affiliate",
		EntityID: &a.ID,
	})

	httpresp.Created(c, a)
}

func (h *AffiliateHandler) Update(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var a models.Affiliate
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&a).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "affiliate_not_found", "Affiliate not found")
			return
		}
		httperr.Internal(c, "failed_to_get_affiliate", "Failed to load affiliate")
		return
	}

	var req AffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	req.apply(&a)
	if a.Name == "" {
		httperr.BadRequest(c, "invalid_name", "Name is required")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&a).Error; err != nil {
		httperr.Internal(c, "failed_to_update_affiliate", "Failed to update affiliate")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "affiliate_updated",
		Entity:   "affiliate",
		EntityID: &a.ID,
	})

	c.JSON(http.StatusOK, a)
}

// Commissions sums the purchases and commission owed per affiliate.
// Cancelled purchases are left out.
func (h *AffiliateHandler) Commissions(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Table("purchases p").
		Select(`a.id AS affiliate_id, a.name AS name,
			COUNT(p.id) AS purchases,
			COALESCE(SUM(p.amount_paid), 0) AS amount_paid,
			COALESCE(SUM(p.commission_amount), 0) AS commission_total`).
		Joins("JOIN affiliates a ON a.id = p.affiliate_id").
		Where("p.tenant_id = ? AND p.status <> ?", tenant.ID, string(purchase.StatusCancelled))

	if from := parseOptionalDate(tenant, c.Query("from")); from != nil {
		q = q.Where("p.created_at >= ?", *from)
	}
	if to := parseOptionalDate(tenant, c.Query("to")); to != nil {
		q = q.Where("p.created_at < ?", to.AddDate(0, 0, 1))
	}

	var rows []CommissionRow
	if err := q.Group("a.id, a.name").Order("commission_total DESC").Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Failed to build commission report")
		return
	}

	httpresp.List(c, rows)
}
