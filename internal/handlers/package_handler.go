package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type PackageHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPackageHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PackageHandler {
	return &PackageHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreatePackageRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Price            int64  `json:"price" binding:"required"`
	OriginalPrice    *int64 `json:"original_price"`
	SessionsIncluded int    `json:"sessions_included" binding:"required"`
	IsPopular        bool   `json:"is_popular"`
	Badge            string `json:"badge"`
	DisplayOrder     int    `json:"display_order"`
}

type UpdatePackageRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Price            *int64  `json:"price,omitempty"`
	OriginalPrice    *int64  `json:"original_price,omitempty"`
	SessionsIncluded *int    `json:"sessions_included,omitempty"`
	IsPopular        *bool   `json:"is_popular,omitempty"`
	Badge            *string `json:"badge,omitempty"`
	DisplayOrder     *int    `json:"display_order,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

func validatePackage(price int64, sessions int) error {
	if price <= 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	if sessions < 1 {
		return httperr.ErrBusiness("invalid_sessions")
	}
	return nil
}

// --------- Handlers ---------

// ListActive is the public catalogue of a business.
func (h *PackageHandler) ListActive(c *gin.Context) {
	tenant := loadTenantBySlug(c, h.db, c.Param("slug"))
	if tenant == nil {
		return
	}

	var packages []models.ServicePackage
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ? AND is_active = ?", tenant.ID, true).
		Order("display_order ASC, price ASC").
		Find(&packages).Error; err != nil {

		httperr.Internal(c, "failed_to_list_packages", "Failed to list packages")
		return
	}

	httpresp.List(c, packages)
}

// List returns every package of the owner's business, inactive ones included.
func (h *PackageHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ?", middleware.TenantID(c))

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var packages []models.ServicePackage
	if err := q.Order("display_order ASC, created_at ASC").Find(&packages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_packages", "Failed to list packages")
		return
	}

	httpresp.List(c, packages)
}

func (h *PackageHandler) Create(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := validatePackage(req.Price, req.SessionsIncluded); err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	pkg := models.ServicePackage{
		TenantID:         tenantID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		SessionsIncluded: req.SessionsIncluded,
		IsPopular:        req.IsPopular,
		Badge:            req.Badge,
		DisplayOrder:     req.DisplayOrder,
		IsActive:         true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_package", "Failed to create package")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "package_created",
		Entity:   "package",
		EntityID: &pkg.ID,
		Metadata: map[string]any{"price": pkg.Price, "sessions": pkg.SessionsIncluded},
	})

	httpresp.Created(c, pkg)
}

func (h *PackageHandler) Update(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	pkg, ok := h.find(c, tenantID, c.Param("id"))
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		pkg.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		pkg.OriginalPrice = req.OriginalPrice
	}
	if req.SessionsIncluded != nil {
		pkg.SessionsIncluded = *req.SessionsIncluded
	}
	if req.IsPopular != nil {
		pkg.IsPopular = *req.IsPopular
	}
	if req.Badge != nil {
		pkg.Badge = *req.Badge
	}
	if req.DisplayOrder != nil {
		pkg.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := validatePackage(pkg.Price, pkg.SessionsIncluded); err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_package", "Failed to update package")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "package_updated",
		Entity:   "package",
		EntityID: &pkg.ID,
	})

	c.JSON(http.StatusOK, pkg)
}

// Delete deactivates the package; purchases keep referencing it.
func (h *PackageHandler) Delete(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	pkg, ok := h.find(c, tenantID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(pkg).
		Update("is_active", false).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_package", "Failed to delete package")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "package_deleted",
		Entity:   "package",
		EntityID: &pkg.ID,
	})

	c.Status(http.StatusNoContent)
}

func (h *PackageHandler) find(c *gin.Context, tenantID, id string) (*models.ServicePackage, bool) {
	var pkg models.ServicePackage
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&pkg).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "package_not_found", "Package not found")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_package", "Failed to load package")
		return nil, false
	}
	return &pkg, true
}
