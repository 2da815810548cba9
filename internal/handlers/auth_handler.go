package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/auth"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/timezone"
	"github.com/BruksfildServices01/inkless-booking/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.Service
	audit  *audit.Dispatcher

	// checkEmailDomain resolves the email domain before registering.
	checkEmailDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Service, dispatcher *audit.Dispatcher, verifyEmailDomain bool) *AuthHandler {
	h := &AuthHandler{db: db, tokens: tokens, audit: dispatcher}
	if verifyEmailDomain {
		h.checkEmailDomain = validators.IsEmailDomainValid
	}
	return h
}

// --------- Requests ---------

type RegisterRequest struct {
	TenantName  string `json:"tenant_name" binding:"required"`
	TenantSlug  string `json:"tenant_slug" binding:"required"`
	TenantPhone string `json:"tenant_phone"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.TenantSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.checkEmailDomain != nil && !h.checkEmailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone")
		return
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = "KSh"
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to register")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         auth.RoleOwner,
	}
	tenant := models.Tenant{
		Name:           strings.TrimSpace(req.TenantName),
		Slug:           slug,
		Phone:          req.TenantPhone,
		Email:          email,
		Currency:       currency,
		Timezone:       tz,
		BookingEnabled: true,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("slug_already_exists")
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("email_already_exists")
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		tenant.OwnerID = user.ID
		return tx.Create(&tenant).Error
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_register")
		return
	}

	token, err := h.tokens.Issue(user.ID, tenant.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to sign in")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   &user.ID,
		Action:   "tenant_registered",
		Entity:   "tenant",
		EntityID: &tenant.ID,
	})

	c.JSON(http.StatusCreated, authResponse(&user, &tenant, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to sign in")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	var tenant models.Tenant
	if err := db.Where("owner_id = ?", user.ID).First(&tenant).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_signed_in", now).Error; err == nil {
		user.LastSignedIn = &now
	}

	token, err := h.tokens.Issue(user.ID, tenant.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, authResponse(&user, &tenant, token))
}

func authResponse(user *models.User, tenant *models.Tenant, token string) gin.H {
	return gin.H{
		"user":   userJSON(user, tenant.ID),
		"tenant": tenantSummary(tenant),
		"token":  token,
	}
}

func userJSON(user *models.User, tenantID string) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"tenant_id": tenantID,
	}
}

func tenantSummary(t *models.Tenant) gin.H {
	return gin.H{
		"id":       t.ID,
		"name":     t.Name,
		"slug":     t.Slug,
		"phone":    t.Phone,
		"currency": t.Currency,
		"timezone": t.Timezone,
	}
}
