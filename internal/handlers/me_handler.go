package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		httperr.Unauthorized(c, "user_not_in_context", "Not signed in")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Not signed in")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Failed to load user")
		return
	}

	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userJSON(&user, tenant.ID),
		"tenant": tenantSummary(tenant),
	})
}
