package appointment

import (
	"context"
	"time"

	"github.com/nailbook/salon-scheduler/internal/audit"
	"github.com/nailbook/salon-scheduler/internal/cache"
	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	NewDate       string
	NewTime       string
	Actor         domain.Actor
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	now   func(tz string) time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: auditDisp,
		cache: availCache,
		now:   timezone.NowIn,
	}
}

func (uc *RescheduleAppointment) WithNow(now func(tz string) time.Time) *RescheduleAppointment {
	uc.now = now
	return uc
}

// Execute moves an appointment to a new slot. Only the owning
// customer may reschedule; the 2-hour lead-time rule applies to the
// original slot, the new slot re-runs the booking gates, and the
// appointment's own record is excluded from the conflict check. On
// success the status resets to pending for re-confirmation.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if !in.Actor.OwnsAppointment(ap) {
		return nil, httperr.ErrUnauthorized("not_appointment_owner")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	now := uc.now(salon.Timezone)

	// eligibility is judged on the slot being given up
	if err := domain.CanCancel(ap, now, loc); err != nil {
		return nil, err
	}

	newStart, err := domain.StartAt(in.NewDate, in.NewTime, loc)
	if err != nil {
		return nil, err
	}
	if !domain.IsOpen(salon, newStart) {
		return nil, httperr.ErrValidation("salon_closed")
	}
	if !domain.WithinWindow(salon, in.NewTime) {
		return nil, httperr.ErrValidation("outside_working_hours")
	}
	if !newStart.After(now) {
		return nil, httperr.ErrValidation("time_in_past")
	}

	occupied, err := uc.repo.IsOccupied(
		ctx,
		ap.SalonID,
		ap.StaffID,
		in.NewDate,
		in.NewTime,
		ap.ID,
	)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, httperr.ErrSlotConflict("slot_taken")
	}

	oldDate := ap.AppointmentDate

	if err := uc.repo.RescheduleExclusive(ctx, ap, in.NewDate, in.NewTime); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.SalonID, ap.StaffID, oldDate, in.NewDate)

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from_date": oldDate,
			"to_date":   in.NewDate,
			"to_time":   in.NewTime,
		},
	})

	return ap, nil
}
