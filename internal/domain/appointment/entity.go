package appointment

import (
	"time"

	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CancelLeadTime is the minimum gap between now and the appointment
// start required for a cancel or reschedule.
const CancelLeadTime = 2 * time.Hour

// CanCancel holds iff the appointment is still occupying a slot and
// starts more than CancelLeadTime after now.
func CanCancel(ap *models.Appointment, now time.Time, loc *time.Location) error {
	if IsTerminal(Status(ap.Status)) {
		return httperr.ErrPolicyViolation("appointment_closed")
	}

	startAt, err := StartAt(ap.AppointmentDate, ap.AppointmentTime, loc)
	if err != nil {
		return err
	}
	if !now.Add(CancelLeadTime).Before(startAt) {
		return httperr.ErrPolicyViolation("cancellation_window_passed")
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time, loc *time.Location) error {
	if err := CanCancel(ap, now, loc); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}

// Transition applies a staff-side status change after checking
// state-machine legality.
func Transition(ap *models.Appointment, to Status) error {
	if !IsValidStatus(to) {
		return httperr.ErrValidation("invalid_status")
	}
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}

// ===============================
// Creation invariants
// ===============================

// ValidateCreation runs the booking gates that do not touch the
// store: ownership of staff/service, closed day, working window and
// the not-in-the-past rule. Validated against the salon snapshot at
// creation; later changes to salon hours do not retroactively
// invalidate appointments.
func ValidateCreation(
	salon *models.Salon,
	staff *models.Staff,
	service *models.Service,
	dateStr string,
	timeStr string,
	now time.Time,
	loc *time.Location,
) error {

	if !salon.IsActive {
		return httperr.ErrValidation("salon_inactive")
	}
	if staff.SalonID != salon.ID {
		return httperr.ErrValidation("staff_not_in_salon")
	}
	if service.SalonID != salon.ID {
		return httperr.ErrValidation("service_not_in_salon")
	}

	startAt, err := StartAt(dateStr, timeStr, loc)
	if err != nil {
		return err
	}

	if !IsOpen(salon, startAt) {
		return httperr.ErrValidation("salon_closed")
	}
	if !WithinWindow(salon, timeStr) {
		return httperr.ErrValidation("outside_working_hours")
	}
	if !startAt.After(now) {
		return httperr.ErrValidation("time_in_past")
	}

	return nil
}

// ===============================
// Actors
// ===============================

// Actor is the caller identity resolved once at the request
// boundary; authorization-sensitive operations receive it instead of
// re-deriving roles ad hoc.
type Actor struct {
	UserID  uint
	Role    string
	SalonID uint // zero unless owner or staff
}

func (a Actor) ManagesSalon(salonID uint) bool {
	if a.Role != models.RoleSalonOwner && a.Role != models.RoleStaff {
		return false
	}
	return a.SalonID == salonID
}

func (a Actor) OwnsAppointment(ap *models.Appointment) bool {
	return ap.CustomerID != nil && *ap.CustomerID == a.UserID
}
