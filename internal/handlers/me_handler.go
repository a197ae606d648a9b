package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/timezone"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, userPayload(&user))
}

// MyAppointments returns the customer's bookings split into upcoming
// and past, each preloaded for display.
func (h *MeHandler) MyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var aps []models.Appointment
	if err := h.db.
		Preload("Salon").
		Preload("Staff.User").
		Preload("Service").
		Where("customer_id = ?", userID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	upcoming := make([]models.Appointment, 0)
	past := make([]models.Appointment, 0)
	for _, ap := range aps {
		if isUpcoming(&ap) {
			upcoming = append(upcoming, ap)
		} else {
			past = append(past, ap)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"upcoming": upcoming,
		"past":     past,
	})
}

// The split is judged in the salon's own timezone: a 21:00 booking in
// Tehran is upcoming until 21:00 Tehran time, wherever the customer is.
func isUpcoming(ap *models.Appointment) bool {
	loc := timezone.Location(ap.Salon.Timezone)
	start, err := domain.StartAt(ap.AppointmentDate, ap.AppointmentTime, loc)
	if err != nil {
		return false
	}
	return timezone.NowIn(ap.Salon.Timezone).Before(start) &&
		!domain.IsTerminal(domain.Status(ap.Status))
}
