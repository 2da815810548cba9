package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// loadTenantBySlug writes a 404 and returns nil when the slug is unknown.
func loadTenantBySlug(c *gin.Context, db *gorm.DB, slug string) *models.Tenant {
	var tenant models.Tenant
	err := db.WithContext(c.Request.Context()).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "tenant_not_found", "Business not found")
			return nil
		}
		httperr.Internal(c, "failed_to_get_tenant", "Failed to load business")
		return nil
	}
	return &tenant
}

// loadCurrentTenant loads the tenant of the signed-in owner.
func loadCurrentTenant(c *gin.Context, db *gorm.DB) *models.Tenant {
	var tenant models.Tenant
	err := db.WithContext(c.Request.Context()).
		First(&tenant, "id = ?", middleware.TenantID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "tenant_not_found", "Business not found")
			return nil
		}
		httperr.Internal(c, "failed_to_get_tenant", "Failed to load business")
		return nil
	}
	return &tenant
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

func strPtr(s string) *string {
	return &s
}
