package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/config"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterSalonRequest struct {
	SalonName    string `json:"salon_name" binding:"required"`
	SalonPhone   string `json:"salon_phone"`
	SalonAddress string `json:"salon_address"`
	OpeningTime  string `json:"opening_time"`
	ClosingTime  string `json:"closing_time"`
	ClosedDays   string `json:"closed_days"`
	Timezone     string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterSalon(c *gin.Context) {
	var req RegisterSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	opening := req.OpeningTime
	closing := req.ClosingTime
	if opening == "" {
		opening = "09:00"
	}
	if closing == "" {
		closing = "21:00"
	}
	if !validateWindow(opening, closing) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_working_hours"})
		return
	}

	closedDays := req.ClosedDays
	if closedDays == "" {
		closedDays = "friday"
	}
	if !validateClosedDays(closedDays) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_closed_days"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        &email,
		PasswordHash: string(hashed),
		Role:         models.RoleSalonOwner,
	}
	if req.Phone != "" {
		phone := validators.NormalizePhone(req.Phone)
		user.Phone = &phone
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_or_phone_taken"})
		return
	}

	salon := models.Salon{
		Name:        req.SalonName,
		OwnerID:     user.ID,
		Phone:       req.SalonPhone,
		Address:     req.SalonAddress,
		OpeningTime: opening,
		ClosingTime: closing,
		ClosedDays:  strings.ToLower(closedDays),
		Timezone:    req.Timezone,
		IsActive:    true,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_salon"})
		return
	}

	token, err := h.generateToken(&user, salon.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(&user),
		"salon": salonPayload(&salon),
		"token": token,
	})
}

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if !validators.IsMobileValid(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        &email,
		PasswordHash: string(hashed),
		Phone:        &phone,
		Role:         models.RoleCustomer,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_or_phone_taken"})
		return
	}

	token, err := h.generateToken(&user, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	salonID := h.salonIDForUser(&user)

	token, err := h.generateToken(&user, salonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

// --------- JWT ---------

// salonIDForUser resolves the salon an owner or staff member acts
// for; customers get zero.
func (h *AuthHandler) salonIDForUser(user *models.User) uint {
	switch user.Role {
	case models.RoleSalonOwner:
		var salon models.Salon
		if err := h.db.Where("owner_id = ?", user.ID).First(&salon).Error; err == nil {
			return salon.ID
		}
	case models.RoleStaff:
		var staff models.Staff
		if err := h.db.Where("user_id = ?", user.ID).First(&staff).Error; err == nil {
			return staff.SalonID
		}
	}
	return 0
}

func (h *AuthHandler) generateToken(user *models.User, salonID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if salonID != 0 {
		claims["salonId"] = salonID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// --------- Payloads ---------

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}

func salonPayload(salon *models.Salon) gin.H {
	return gin.H{
		"id":           salon.ID,
		"name":         salon.Name,
		"phone":        salon.Phone,
		"address":      salon.Address,
		"opening_time": salon.OpeningTime,
		"closing_time": salon.ClosingTime,
		"closed_days":  salon.ClosedDays,
		"is_active":    salon.IsActive,
	}
}
