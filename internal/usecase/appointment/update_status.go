package appointment

import (
	"context"

	"github.com/nailbook/salon-scheduler/internal/audit"
	"github.com/nailbook/salon-scheduler/internal/cache"
	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditDisp,
		cache: availCache,
	}
}

// Execute applies a salon-side status change (confirm, start,
// complete, no-show, cancel). Restricted to the salon's owner or
// staff; the appointment's state machine decides legality.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	newStatus string,
	actor domain.Actor,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if !actor.ManagesSalon(ap.SalonID) {
		return nil, httperr.ErrUnauthorized("access_denied")
	}

	if err := domain.Transition(ap, domain.Status(newStatus)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// any status change may free or keep the slot
	uc.cache.Invalidate(ctx, ap.SalonID, ap.StaffID, ap.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &actor.UserID,
		Action:   "appointment_status_" + newStatus,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
