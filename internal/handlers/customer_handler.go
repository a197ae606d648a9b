package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/middleware"
	"github.com/nailbook/salon-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// List returns customers who have booked at the salon at least once.
func (h *CustomerHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.User{}).
		Joins("JOIN appointments ON appointments.customer_id = users.id").
		Where("appointments.salon_id = ?", salonID).
		Distinct()

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(users.name) LIKE ? OR users.phone LIKE ?",
			like, like,
		)
	}

	var customers []models.User
	if err := q.
		Order("users.id DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}
