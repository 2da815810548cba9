package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/httpresp"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type AvailabilityHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAvailabilityHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, audit: dispatcher}
}

type WeeklyWindow struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

type AvailabilityUpdateRequest struct {
	Slots []WeeklyWindow `json:"slots"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	var slots []models.AvailableSlot
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {

		httperr.Internal(c, "failed_to_get_availability", "Failed to load opening hours")
		return
	}

	httpresp.List(c, slots)
}

// Update replaces the whole weekly schedule.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	toCreate := make([]models.AvailableSlot, 0, len(req.Slots))
	for _, w := range req.Slots {
		start := strings.TrimSpace(w.StartTime)
		end := strings.TrimSpace(w.EndTime)
		if !domain.ValidClock(start) || !domain.ValidClock(end) || start >= end {
			httperr.BadRequest(c, "invalid_time_window", "Each window needs HH:MM start before end")
			return
		}

		active := true
		if w.IsActive != nil {
			active = *w.IsActive
		}
		toCreate = append(toCreate, models.AvailableSlot{
			TenantID:  tenantID,
			DayOfWeek: w.DayOfWeek,
			StartTime: start,
			EndTime:   end,
			IsActive:  active,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).Delete(&models.AvailableSlot{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Failed to save opening hours")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "availability_updated",
		Entity:   "available_slot",
		Metadata: map[string]any{"windows": len(toCreate)},
	})

	httpresp.List(c, toCreate)
}

func (h *AvailabilityHandler) ListBlocked(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("tenant_id = ?", tenant.ID)
	if from := parseOptionalDate(tenant, c.Query("from")); from != nil {
		q = q.Where("date >= ?", *from)
	}

	var dates []models.BlockedDate
	if err := q.Order("date ASC").Find(&dates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_dates", "Failed to list blocked dates")
		return
	}

	httpresp.List(c, dates)
}

func (h *AvailabilityHandler) CreateBlocked(c *gin.Context) {
	tenant := loadCurrentTenant(c, h.db)
	if tenant == nil {
		return
	}

	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	day, err := parseDateInTenant(tenant, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date")
		return
	}

	blocked := models.BlockedDate{
		TenantID: tenant.ID,
		Date:     day,
		Reason:   strings.TrimSpace(req.Reason),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&blocked).Error; err != nil {
		httperr.Internal(c, "failed_to_block_date", "Failed to block date")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "date_blocked",
		Entity:   "blocked_date",
		EntityID: &blocked.ID,
		Metadata: map[string]any{"date": req.Date},
	})

	httpresp.Created(c, blocked)
}

func (h *AvailabilityHandler) DeleteBlocked(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.BlockedDate{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_unblock_date", "Failed to remove blocked date")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "blocked_date_not_found", "Blocked date not found")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   strPtr(middleware.UserID(c)),
		Action:   "date_unblocked",
		Entity:   "blocked_date",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
