package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
)

// TimeSlotHandler manages per-staff schedule overrides. The
// availability endpoint derives its grid from the salon working
// window and does not read these records.
type TimeSlotHandler struct {
	db *gorm.DB
}

func NewTimeSlotHandler(db *gorm.DB) *TimeSlotHandler {
	return &TimeSlotHandler{db: db}
}

type PutTimeSlotRequest struct {
	StaffID     uint   `json:"staff_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
}

func (h *TimeSlotHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var slots []models.TimeSlot
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_slots", "Could not list time slots.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Put upserts by the (salon, staff, date, start_time) key.
func (h *TimeSlotHandler) Put(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req PutTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if !isValidDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	if !isValidClock(req.StartTime) || !isValidClock(req.EndTime) ||
		req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_time_range", "Start must be before end.")
		return
	}

	var staffCount int64
	h.db.Model(&models.Staff{}).
		Where("id = ? AND salon_id = ?", req.StaffID, salonID).
		Count(&staffCount)
	if staffCount == 0 {
		httperr.NotFound(c, "staff_not_found", "Staff not found.")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	var slot models.TimeSlot
	err := h.db.
		Where(
			"salon_id = ? AND staff_id = ? AND date = ? AND start_time = ?",
			salonID, req.StaffID, req.Date, req.StartTime,
		).
		First(&slot).Error

	if err != nil {
		slot = models.TimeSlot{
			SalonID:     salonID,
			StaffID:     req.StaffID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			IsAvailable: available,
		}
		if err := h.db.Create(&slot).Error; err != nil {
			httperr.Internal(c, "failed_to_save_time_slot", "Could not save time slot.")
			return
		}
		c.JSON(http.StatusCreated, slot)
		return
	}

	slot.EndTime = req.EndTime
	slot.IsAvailable = available
	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_save_time_slot", "Could not save time slot.")
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *TimeSlotHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid time slot id.")
		return
	}

	res := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.TimeSlot{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_time_slot", "Could not delete time slot.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "time_slot_not_found", "Time slot not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
