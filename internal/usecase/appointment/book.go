package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nailbook/salon-scheduler/internal/audit"
	"github.com/nailbook/salon-scheduler/internal/cache"
	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
	"github.com/nailbook/salon-scheduler/internal/timezone"
	"github.com/nailbook/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	SalonID   uint
	StaffID   uint
	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	// Registered customer, or guest identified by phone. Both may be
	// empty for a staff-entered walk-in without contact data.
	CustomerID *uint
	GuestName  string
	GuestPhone string

	// Overrides the service price when set.
	TotalPrice *int

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	now   func(tz string) time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: auditDisp,
		cache: availCache,
		now:   timezone.NowIn,
	}
}

// WithNow replaces the clock; tests pin it around the policy
// boundaries.
func (uc *BookAppointment) WithNow(now func(tz string) time.Time) *BookAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the booking gates in order, first failure wins:
// salon active, staff and service belong to the salon, open day,
// time inside the working window, not in the past, slot free. The
// occupancy check and the insert run in one transaction; the partial
// unique slot index settles races between concurrent attempts.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID)
	if err != nil {
		return nil, httperr.ErrNotFound("staff_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	now := uc.now(salon.Timezone)

	if err := domain.ValidateCreation(
		salon, staff, service,
		in.Date, in.Time,
		now, loc,
	); err != nil {
		return nil, err
	}

	customerID, err := uc.resolveCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	totalPrice := service.Price
	if in.TotalPrice != nil {
		totalPrice = *in.TotalPrice
	}

	// UX pre-check; the transactional re-check in the repository is
	// what actually holds under concurrency.
	occupied, err := uc.repo.IsOccupied(ctx, in.SalonID, in.StaffID, in.Date, in.Time, 0)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, httperr.ErrSlotConflict("slot_taken")
	}

	ap := &models.Appointment{
		SalonID:         in.SalonID,
		CustomerID:      customerID,
		StaffID:         in.StaffID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		TotalPrice:      totalPrice,
		ReferenceCode:   uuid.NewString(),
	}

	if err := uc.repo.CreateAppointmentExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.SalonID, in.StaffID, in.Date)

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   customerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveCustomer attaches a registered customer or runs the
// atomic lookup-or-create guest path. Tagging the user with the
// customer role is a deliberate cross-entity write.
func (uc *BookAppointment) resolveCustomer(
	ctx context.Context,
	in BookAppointmentInput,
) (*uint, error) {

	if in.CustomerID != nil {
		if _, err := uc.repo.GetUserByID(ctx, *in.CustomerID); err != nil {
			return nil, httperr.ErrNotFound("customer_not_found")
		}
		if err := uc.repo.EnsureCustomerRole(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
		return in.CustomerID, nil
	}

	if in.GuestPhone == "" {
		return nil, nil
	}

	phone := validators.NormalizePhone(in.GuestPhone)
	if !validators.IsMobileValid(phone) {
		return nil, httperr.ErrValidation("invalid_phone")
	}

	guest, err := uc.repo.GetOrCreateCustomerByPhone(ctx, in.GuestName, phone)
	if err != nil {
		return nil, err
	}
	// the phone may match an existing staff or owner account; attaching
	// it to an appointment tags it customer like the registered path
	if err := uc.repo.EnsureCustomerRole(ctx, guest.ID); err != nil {
		return nil, err
	}
	return &guest.ID, nil
}
