package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/validators"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type CreateStaffRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	Specialties string `json:"specialties"`
}

type UpdateStaffRequest struct {
	Specialties *string `json:"specialties"`
	IsAvailable *bool   `json:"is_available"`
}

func (h *StaffHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var staff []models.Staff
	if err := h.db.
		Preload("User").
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// Create registers a staff login and attaches it to the salon.
func (h *StaffHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create staff.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        &email,
		PasswordHash: string(hashed),
		Role:         models.RoleStaff,
	}
	if req.Phone != "" {
		phone := validators.NormalizePhone(req.Phone)
		user.Phone = &phone
	}

	var staff models.Staff

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		staff = models.Staff{
			UserID:      user.ID,
			SalonID:     salonID,
			Specialties: req.Specialties,
			IsAvailable: true,
		}
		return tx.Create(&staff).Error
	})

	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_or_phone_taken", "Email or phone already in use.")
			return
		}
		httperr.Internal(c, "failed_to_create_staff", "Could not create staff.")
		return
	}

	staff.User = user
	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid staff id.")
		return
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff not found.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Specialties != nil {
		staff.Specialties = *req.Specialties
	}
	if req.IsAvailable != nil {
		staff.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update staff.")
		return
	}

	c.JSON(http.StatusOK, staff)
}
