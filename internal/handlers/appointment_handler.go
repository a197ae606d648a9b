package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/dto"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/httpresp"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
	ucAppointment "github.com/nailbook/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	bookUC         *ucAppointment.BookAppointment
	cancelUC       *ucAppointment.CancelAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	updateStatusUC *ucAppointment.UpdateStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	updateStatusUC *ucAppointment.UpdateStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		bookUC:         bookUC,
		cancelUC:       cancelUC,
		rescheduleUC:   rescheduleUC,
		updateStatusUC: updateStatusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`

	CustomerID *uint  `json:"customer_id"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`

	TotalPrice *int   `json:"total_price"`
	Notes      string `json:"notes"`
}

type CustomerBookRequest struct {
	SalonID   uint   `json:"salon_id" binding:"required"`
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentRequest struct {
	IsPaid        bool   `json:"is_paid"`
	PaymentMethod string `json:"payment_method"`
}

type SMSFlagsRequest struct {
	SMSSent      *bool `json:"sms_sent"`
	ReminderSent *bool `json:"reminder_sent"`
}

// ======================================================
// CREATE (salon side, walk-in or picked customer)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
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
		CustomerID: req.CustomerID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// CREATE (logged-in customer)
// ======================================================

func (h *AppointmentHandler) CreateForCustomer(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CustomerBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		SalonID:    req.SalonID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		CustomerID: &userID,
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
	})
}

// ======================================================
// CANCEL / RESCHEDULE / STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	actor := middleware.ActorFromContext(c)

	if _, err := h.cancelUC.Execute(c.Request.Context(), id, actor); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	actor := middleware.ActorFromContext(c)

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: id,
		NewDate:       req.Date,
		NewTime:       req.Time,
		Actor:         actor,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     ap.ID,
		"status": ap.Status,
		"date":   ap.AppointmentDate,
		"time":   ap.AppointmentTime,
	})
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	actor := middleware.ActorFromContext(c)

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": ap.Status})
}

// ======================================================
// PAYMENT / SMS FLAGS
// ======================================================

var paymentMethods = map[string]bool{
	"cash": true, "card": true, "online": true,
}

// MarkPayment records that payment happened out of band; no money
// moves through this service.
func (h *AppointmentHandler) MarkPayment(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.PaymentMethod != "" && !paymentMethods[req.PaymentMethod] {
		httperr.BadRequest(c, "invalid_payment_method", "Unknown payment method.")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	ap.IsPaid = req.IsPaid
	ap.PaymentMethod = req.PaymentMethod

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Could not update payment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// MarkSMS records out-of-band notification sends.
func (h *AppointmentHandler) MarkSMS(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req SMSFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if req.SMSSent != nil {
		ap.SMSSent = *req.SMSSent
	}
	if req.ReminderSent != nil {
		ap.ReminderSent = *req.ReminderSent
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_sms_flags", "Could not update flags.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LISTS (salon side)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	date := c.Query("date")
	if !isValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "Date is required (YYYY-MM-DD).")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Staff.User").
		Preload("Service").
		Where("salon_id = ? AND appointment_date = ?", salonID, date).
		Order("appointment_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, toListDTOs(aps))
}

// Calendar feeds the salon dashboard for a date range.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	start := c.Query("start")
	end := c.Query("end")
	if !isValidDate(start) || !isValidDate(end) || start > end {
		httperr.BadRequest(c, "invalid_range", "Start and end dates are required.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Staff.User").
		Preload("Service").
		Where(
			"salon_id = ? AND appointment_date >= ? AND appointment_date <= ?",
			salonID, start, end,
		).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, toListDTOs(aps))
}

func toListDTOs(aps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			AppointmentDate: ap.AppointmentDate,
			AppointmentTime: ap.AppointmentTime,
			Status:          ap.Status,
			StaffName:       ap.Staff.User.Name,
			ServiceName:     ap.Service.Name,
			TotalPrice:      ap.TotalPrice,
		}
		if ap.Customer != nil {
			item.CustomerName = ap.Customer.Name
		}
		out = append(out, item)
	}
	return out
}
