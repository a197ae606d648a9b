package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nailbook/salon-scheduler/internal/audit"
	"github.com/nailbook/salon-scheduler/internal/cache"
	"github.com/nailbook/salon-scheduler/internal/config"
	"github.com/nailbook/salon-scheduler/internal/handlers"
	infraRepo "github.com/nailbook/salon-scheduler/internal/infra/repository"
	"github.com/nailbook/salon-scheduler/internal/middleware"
	ucAppointment "github.com/nailbook/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// Redis is optional; without an address the cache is a no-op.
	var availCache *cache.Availability
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		availCache = cache.NewAvailability(rdb, 2*time.Minute)
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		auditDispatcher,
		availCache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		availCache,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		availCache,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		availCache,
	)

	availableTimesUC := ucAppointment.NewAvailableTimes(
		appointmentRepo,
		availCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	timeSlotHandler := handlers.NewTimeSlotHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		updateStatusUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		availableTimesUC,
		bookAppointmentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/salons", publicHandler.ListSalons)
			publicAPI.GET("/salons/:id", publicHandler.GetSalon)
			publicAPI.GET("/salons/:id/services", publicHandler.ListSalonServices)
			publicAPI.GET("/salons/:id/staff", publicHandler.ListSalonStaff)
			publicAPI.GET("/salons/:id/available-times", publicHandler.AvailableTimes)
			publicAPI.POST("/salons/:id/appointments", publicHandler.GuestBook)
			publicAPI.GET("/appointments/:code", publicHandler.LookupByReference)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register-salon", authHandler.RegisterSalon)
		api.POST("/auth/register", authHandler.RegisterCustomer)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CUSTOMER
			// ------------------------------
			secured.GET("/me/appointments", meHandler.MyAppointments)
			secured.POST("/appointments", appointmentHandler.CreateForCustomer)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// SALON SIDE
			// ------------------------------
			salon := secured.Group("/me/salon")
			salon.Use(middleware.RequireSalonRole())
			{
				salon.GET("", salonHandler.GetMySalon)
				salon.PATCH("", salonHandler.UpdateMySalon)

				salon.GET("/services", serviceHandler.List)
				salon.POST("/services", serviceHandler.Create)
				salon.PATCH("/services/:id", serviceHandler.Update)

				salon.GET("/staff", staffHandler.List)
				salon.POST("/staff", staffHandler.Create)
				salon.PATCH("/staff/:id", staffHandler.Update)

				salon.GET("/customers", customerHandler.List)

				salon.GET("/time-slots", timeSlotHandler.List)
				salon.PUT("/time-slots", timeSlotHandler.Put)
				salon.DELETE("/time-slots/:id", timeSlotHandler.Delete)

				salon.POST("/appointments", appointmentHandler.Create)
				salon.GET("/appointments", appointmentHandler.ListByDate)
				salon.GET("/appointments/calendar", appointmentHandler.Calendar)
				salon.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
				salon.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				salon.PATCH("/appointments/:id/payment", appointmentHandler.MarkPayment)
				salon.PATCH("/appointments/:id/sms", appointmentHandler.MarkSMS)

				salon.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
