package appointment

import (
	"context"

	"github.com/nailbook/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	SalonID        uint
	StaffID        uint
	Date           string // YYYY-MM-DD
	GranularityMin int    // 0 = default
}

type Repository interface {
	// -------- Salon / Staff / Service --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetStaff(
		ctx context.Context,
		salonID uint,
		staffID uint,
	) (*models.Staff, error)

	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Customer --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// Lookup-or-create keyed by phone, first match wins. Must be
	// atomic under concurrent walk-in submissions.
	GetOrCreateCustomerByPhone(
		ctx context.Context,
		name string,
		phone string,
	) (*models.User, error)

	// Deliberate cross-entity write: attaching a user to an
	// appointment tags them with the customer role.
	EnsureCustomerRole(
		ctx context.Context,
		userID uint,
	) error

	// -------- Appointment (create / conflict) --------
	CreateAppointmentExclusive(
		ctx context.Context,
		ap *models.Appointment,
	) error

	IsOccupied(
		ctx context.Context,
		salonID uint,
		staffID uint,
		date string,
		timeStr string,
		excludeID uint,
	) (bool, error)

	// Occupying booked times for one staff/date, ascending.
	BookedTimes(
		ctx context.Context,
		salonID uint,
		staffID uint,
		date string,
	) ([]string, error)

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// Moves the appointment to the new slot iff the slot is free,
	// excluding the appointment's own record from the check.
	RescheduleExclusive(
		ctx context.Context,
		ap *models.Appointment,
		newDate string,
		newTime string,
	) error
}
