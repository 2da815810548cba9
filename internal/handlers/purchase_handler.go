package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/report"
	"github.com/BruksfildServices01/inkless-booking/internal/usecase/checkout"
)

// PurchaseHandler serves the owner's view of the purchase ledger.
type PurchaseHandler struct {
	db       *gorm.DB
	list     *checkout.ListPurchases
	sessions *checkout.UpdateSessionsRemaining
	status   *checkout.UpdatePurchaseStatus
	audit    *audit.Dispatcher
}

func NewPurchaseHandler(db *gorm.DB, repo domain.Repository, dispatcher *audit.Dispatcher) *PurchaseHandler {
	return &PurchaseHandler{
		db:       db,
		list:     checkout.NewListPurchases(repo),
		sessions: checkout.NewUpdateSessionsRemaining(repo, dispatcher),
		status:   checkout.NewUpdatePurchaseStatus(repo, dispatcher),
		audit:    dispatcher,
	}
}

type UpdateSessionsRequest struct {
	SessionsRemaining *int `json:"sessions_remaining" binding:"required"`
}

type UpdatePurchaseStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// filter reads status, email, from and to query parameters. Dates are whole
// days in the tenant timezone; to is inclusive.
func (h *PurchaseHandler) filter(c *gin.Context, tenant *models.Tenant) domain.ListFilter {
	f := domain.ListFilter{
		Status:        strings.TrimSpace(c.Query("status")),
		CustomerEmail: strings.ToLower(strings.TrimSpace(c.Query("email"))),
		From:          parseOptionalDate(tenant, c.Query("from")),
	}
	if to := parseOptionalDate(tenant, c.Query("to")); to != nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}
	return f
}

func (h *PurchaseHandler) List(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	purchases, err := h.list.Execute(c.Request.Context(), tenant.ID, h.filter(c, tenant))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_purchases")
		return
	}

	httpresp.List(c, purchases)
}

func (h *PurchaseHandler) UpdateSessions(c *gin.Context) {
	var req UpdateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p, err := h.sessions.Execute(
		c.Request.Context(),
		middleware.TenantID(c),
		middleware.UserID(c),
		c.Param("id"),
		*req.SessionsRemaining,
	)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_purchase")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	var req UpdatePurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		httperr.BadRequest(c, "invalid_status", "Nothing to update")
		return
	}

	p, err := h.status.Execute(c.Request.Context(), checkout.UpdatePurchaseStatusInput{
		TenantID:      middleware.TenantID(c),
		UserID:        middleware.UserID(c),
		PurchaseID:    c.Param("id"),
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_purchase")
		return
	}

	c.JSON(http.StatusOK, p)
}

// Export streams the filtered purchase list as an .xlsx workbook.
func (h *PurchaseHandler) Export(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	purchases, err := h.list.Execute(c.Request.Context(), tenant.ID, h.filter(c, tenant))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_purchases")
		return
	}

	var packages []models.ServicePackage
	if err := h.db.WithContext(c.Request.Context()).
		Select("id", "name").
		Where("tenant_id = ?", tenant.ID).
		Find(&packages).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Failed to build report")
		return
	}
	names := make(map[string]string, len(packages))
	for _, p := range packages {
		names[p.ID] = p.Name
	}

	out, err := report.PurchasesXLSX(purchases, names, tenant.Currency)
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Failed to build report")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "purchases_exported",
		Entity:   "purchase",
		Metadata: map[string]any{"rows": len(purchases)},
	})

	filename := fmt.Sprintf("purchases-%s-%s.xlsx", tenant.Slug, time.Now().In(tenantLocation(tenant)).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
