package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	byDate  *appointment.ListAppointmentsByDate
	byMonth *appointment.ListAppointmentsByMonth
	status  *appointment.UpdateAppointmentStatus
}

func NewAppointmentHandler(repo domain.Repository, dispatcher *audit.Dispatcher) *AppointmentHandler {
	return &AppointmentHandler{
		byDate:  appointment.NewListAppointmentsByDate(repo),
		byMonth: appointment.NewListAppointmentsByMonth(repo),
		status:  appointment.NewUpdateAppointmentStatus(repo, dispatcher),
	}
}

type UpdateAppointmentStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	StaffNotes *string `json:"staff_notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date")
		return
	}

	items, err := h.byDate.Execute(c.Request.Context(), middleware.TenantID(c), date)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": items,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month")
		return
	}

	items, err := h.byMonth.Execute(c.Request.Context(), middleware.TenantID(c), year, month)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		TenantID:      middleware.TenantID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: c.Param("id"),
		Status:        req.Status,
		StaffNotes:    req.StaffNotes,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}
