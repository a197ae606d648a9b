package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	ClosedDays  *string `json:"closed_days"`
	Timezone    *string `json:"timezone"`
	IsActive    *bool   `json:"is_active"`
}

func (h *SalonHandler) GetMySalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMySalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	// hours change together or not at all, so the window invariant
	// is checked on the merged pair
	opening := salon.OpeningTime
	closing := salon.ClosingTime
	if req.OpeningTime != nil {
		opening = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		closing = *req.ClosingTime
	}
	if !validateWindow(opening, closing) {
		httperr.BadRequest(c, "invalid_working_hours", "Opening must be before closing.")
		return
	}
	salon.OpeningTime = opening
	salon.ClosingTime = closing

	if req.ClosedDays != nil {
		if !validateClosedDays(*req.ClosedDays) {
			httperr.BadRequest(c, "invalid_closed_days", "Unknown weekday name.")
			return
		}
		salon.ClosedDays = strings.ToLower(*req.ClosedDays)
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if req.IsActive != nil {
		salon.IsActive = *req.IsActive
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update salon.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
