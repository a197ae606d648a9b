package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/httpresp"
	"github.com/nailbook/salon-scheduler/internal/models"
	ucAppointment "github.com/nailbook/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated storefront: salon
// discovery, availability and guest booking.
type PublicHandler struct {
	db *gorm.DB

	availableUC *ucAppointment.AvailableTimes
	bookUC      *ucAppointment.BookAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availableUC *ucAppointment.AvailableTimes,
	bookUC *ucAppointment.BookAppointment,
) *PublicHandler {
	return &PublicHandler{db: db, availableUC: availableUC, bookUC: bookUC}
}

// ======================================================
// DISCOVERY
// ======================================================

func (h *PublicHandler) ListSalons(c *gin.Context) {
	q := h.db.Model(&models.Salon{}).Where("is_active = ?", true)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR address LIKE ?", like, like)
	}

	var salons []models.Salon
	if err := q.Order("name ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, salons)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("id = ? AND is_active = ?", id, true).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *PublicHandler) ListSalonServices(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND is_active = ?", id, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListSalonStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var staff []models.Staff
	if err := h.db.
		Preload("User").
		Where("salon_id = ? AND is_available = ?", id, true).
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) AvailableTimes(c *gin.Context) {
	salonID, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	staffID, ok := parseQueryID(c, "staff_id")
	if !ok {
		httperr.BadRequest(c, "invalid_staff_id", "staff_id is required.")
		return
	}

	date := c.Query("date")
	if !isValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "Date is required (YYYY-MM-DD).")
		return
	}

	times, err := h.availableUC.Execute(c.Request.Context(), appointment.AvailabilityInput{
		SalonID: salonID,
		StaffID: staffID,
		Date:    date,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            date,
		"available_times": times,
	})
}

// ======================================================
// GUEST BOOKING
// ======================================================

type GuestBookRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *PublicHandler) GuestBook(c *gin.Context) {
	salonID, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var req GuestBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		SalonID:    salonID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		GuestName:  req.Name,
		GuestPhone: req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             ap.ID,
		"reference_code": ap.ReferenceCode,
		"status":         ap.Status,
		"date":           ap.AppointmentDate,
		"time":           ap.AppointmentTime,
	})
}

// LookupByReference lets a guest check a booking without an account.
func (h *PublicHandler) LookupByReference(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		httperr.BadRequest(c, "invalid_code", "Reference code is required.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Salon").
		Preload("Staff.User").
		Preload("Service").
		Where("reference_code = ?", code).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference_code": ap.ReferenceCode,
		"salon":          ap.Salon.Name,
		"staff":          ap.Staff.User.Name,
		"service":        ap.Service.Name,
		"date":           ap.AppointmentDate,
		"time":           ap.AppointmentTime,
		"status":         ap.Status,
	})
}
