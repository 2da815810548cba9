package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/imaging"
	"github.com/BruksfildServices01/inkless-booking/internal/infra/storage"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
)

const maxLogoBytes = 5 << 20

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type TenantHandler struct {
	db      *gorm.DB
	storage storage.Uploader
	audit   *audit.Dispatcher
}

// NewTenantHandler builds the handler. uploader may be nil, in which case
// logo uploads are refused.
func NewTenantHandler(db *gorm.DB, uploader storage.Uploader, dispatcher *audit.Dispatcher) *TenantHandler {
	return &TenantHandler{db: db, storage: uploader, audit: dispatcher}
}

type UpdateTenantRequest struct {
	Name           *string `json:"name"`
	Domain         *string `json:"domain"`
	PrimaryColor   *string `json:"primary_color"`
	AccentColor    *string `json:"accent_color"`
	Description    *string `json:"description"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Address        *string `json:"address"`
	Currency       *string `json:"currency"`
	Timezone       *string `json:"timezone"`
	BookingEnabled *bool   `json:"booking_enabled"`
}

// Public returns the storefront view of a business with its active
// packages.
func (h *TenantHandler) Public(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenant,
		"packages": packages,
	})
}

func (h *TenantHandler) GetMe(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) UpdateMe(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name is required")
			return
		}
		tenant.Name = name
	}
	for _, col := range []*string{req.PrimaryColor, req.AccentColor} {
		if col != nil && !hexColor.MatchString(*col) {
			httperr.BadRequest(c, "invalid_color", "Colours must look like #RRGGBB")
			return
		}
	}
	if req.PrimaryColor != nil {
		tenant.PrimaryColor = *req.PrimaryColor
	}
	if req.AccentColor != nil {
		tenant.AccentColor = *req.AccentColor
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone")
			return
		}
		tenant.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		tenant.Currency = strings.TrimSpace(*req.Currency)
	}
	if req.Domain != nil {
		tenant.Domain = *req.Domain
	}
	if req.Description != nil {
		tenant.Description = *req.Description
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Email != nil {
		tenant.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.WhatsappNumber != nil {
		tenant.WhatsappNumber = *req.WhatsappNumber
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.BookingEnabled != nil {
		tenant.BookingEnabled = *req.BookingEnabled
	}

	if err := h.db.WithContext(c.Request.Context()).Save(tenant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Failed to save business settings")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "tenant_updated",
		Entity:   "tenant",
		EntityID: &tenant.ID,
	})

	c.JSON(http.StatusOK, tenant)
}

// UploadLogo accepts a multipart "logo" file, converts it to WebP and stores
// it as the business logo.
func (h *TenantHandler) UploadLogo(c *gin.Context) {
	if h.storage == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Logo uploads are not configured")
		return
	}

	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A logo file is required")
		return
	}
	if fh.Size > maxLogoBytes {
		httperr.BadRequest(c, "file_too_large", "Logo must be at most 5 MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A logo file is required")
		return
	}
	defer f.Close()

	img, err := imaging.ToWebP(f)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Logo must be a JPEG, PNG or WebP image")
			return
		}
		httperr.Internal(c, "image_conversion_failed", "Failed to process image")
		return
	}

	key := fmt.Sprintf("tenants/%s/logo-%s.webp", tenant.ID, uuid.NewString())
	url, err := h.storage.Upload(c.Request.Context(), key, "image/webp", img)
	if err != nil {
		httperr.Internal(c, "logo_upload_failed", "Failed to store logo")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(tenant).
		Update("logo_url", url).Error; err != nil {

		httperr.Internal(c, "failed_to_update_tenant", "Failed to save business settings")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "tenant_logo_uploaded",
		Entity:   "tenant",
		EntityID: &tenant.ID,
		Metadata: map[string]any{"key": key},
	})

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
