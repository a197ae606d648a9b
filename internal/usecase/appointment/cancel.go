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

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	now   func(tz string) time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditDisp,
		cache: availCache,
		now:   timezone.NowIn,
	}
}

func (uc *CancelAppointment) WithNow(now func(tz string) time.Time) *CancelAppointment {
	uc.now = now
	return uc
}

// Execute cancels an appointment. The owning customer or the salon's
// owner/staff may cancel; everyone is held to the 2-hour lead time.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if !actor.OwnsAppointment(ap) && !actor.ManagesSalon(ap.SalonID) {
		return nil, httperr.ErrUnauthorized("access_denied")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	now := uc.now(salon.Timezone)

	if err := domain.Cancel(ap, now, loc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.SalonID, ap.StaffID, ap.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &actor.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
