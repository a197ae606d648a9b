package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon / Staff / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetOrCreateCustomerByPhone(
	ctx context.Context,
	name string,
	phone string,
) (*models.User, error) {

	var user models.User
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("id ASC").
		First(&user).Error

	if err == nil {
		return &user, nil
	}

	user = models.User{
		Name:  name,
		Phone: &phone,
		Role:  models.RoleCustomer,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a concurrent walk-in race: the unique phone index
		// fired, so the first record wins
		if httperr.IsUniqueViolation(err) {
			var existing models.User
			if ferr := r.db.WithContext(ctx).
				Where("phone = ?", phone).
				Order("id ASC").
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &user, nil
}

func (r *AppointmentGormRepository) EnsureCustomerRole(
	ctx context.Context,
	userID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role <> ?", userID, models.RoleCustomer).
		Update("role", models.RoleCustomer).Error
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) IsOccupied(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date string,
	timeStr string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"salon_id = ? AND staff_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			salonID, staffID, date, timeStr, domain.OccupyingStatuses,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) BookedTimes(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"salon_id = ? AND staff_id = ? AND appointment_date = ? AND status IN ?",
			salonID, staffID, date, domain.OccupyingStatuses,
		).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

// CreateAppointmentExclusive re-checks occupancy and inserts inside
// one transaction. The partial unique index on the slot tuple is the
// canonical conflict mechanism; its violation comes back as the same
// slot_conflict error.
func (r *AppointmentGormRepository) CreateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"salon_id = ? AND staff_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				ap.SalonID, ap.StaffID, ap.AppointmentDate, ap.AppointmentTime,
				domain.OccupyingStatuses,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrSlotConflict("slot_taken")
		}

		return tx.Create(ap).Error
	})

	return translateSlotError(err)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) RescheduleExclusive(
	ctx context.Context,
	ap *models.Appointment,
	newDate string,
	newTime string,
) error {

	oldDate, oldTime, oldStatus := ap.AppointmentDate, ap.AppointmentTime, ap.Status

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"salon_id = ? AND staff_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ? AND id <> ?",
				ap.SalonID, ap.StaffID, newDate, newTime,
				domain.OccupyingStatuses, ap.ID,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrSlotConflict("slot_taken")
		}

		ap.AppointmentDate = newDate
		ap.AppointmentTime = newTime
		ap.Status = string(domain.StatusPending)

		return tx.Save(ap).Error
	})

	if err != nil {
		// failed reschedule leaves the appointment at its old slot
		ap.AppointmentDate, ap.AppointmentTime, ap.Status = oldDate, oldTime, oldStatus
	}
	return translateSlotError(err)
}

// translateSlotError maps a duplicate-key error from the occupying-slot
// index to the business conflict. The in-transaction count catches most
// collisions; the index is the backstop when two writers pass the count
// at the same time.
func translateSlotError(err error) error {
	if err != nil && httperr.IsUniqueViolation(err) {
		return httperr.ErrSlotConflict("slot_taken")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
