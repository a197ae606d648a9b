package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

func seedBooking(t *testing.T, repo *fakeRepo, date, clock string) *models.Appointment {
	t.Helper()

	cid := uint(3)
	ap, err := newBookUC(repo).Execute(context.Background(), BookAppointmentInput{
		SalonID: 1, StaffID: 10, ServiceID: 20,
		Date: date, Time: clock,
		CustomerID: &cid,
	})
	require.NoError(t, err)
	return ap
}

var (
	customerActor = domain.Actor{UserID: 3, Role: models.RoleCustomer}
	ownerActor    = domain.Actor{UserID: 1, Role: models.RoleSalonOwner, SalonID: 1}
	strangerActor = domain.Actor{UserID: 42, Role: models.RoleCustomer}
)

// ---------------------------------------------------
// Cancel
// ---------------------------------------------------

func TestCancelByOwnerCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewCancelAppointment(repo, nil, nil).WithNow(fixedNow)

	got, err := uc.Execute(context.Background(), ap.ID, customerActor)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.Equal(t, string(domain.StatusCancelled), repo.appointments[ap.ID].Status)
}

func TestCancelBySalonOwner(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewCancelAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), ap.ID, ownerActor)
	assert.NoError(t, err)
}

func TestCancelByStrangerDenied(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewCancelAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), ap.ID, strangerActor)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))
	assert.Equal(t, string(domain.StatusPending), repo.appointments[ap.ID].Status)
}

func TestCancelInsideLeadTime(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	// fixedNow is 2026-09-01 10:00; 11:30 the same day is 90 minutes out
	ap := seedBooking(t, repo, "2026-09-01", "11:30")

	uc := NewCancelAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), ap.ID, customerActor)
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_passed"))
}

func TestCancelUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewCancelAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), 9999, customerActor)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

// ---------------------------------------------------
// Status updates
// ---------------------------------------------------

func TestUpdateStatusFlow(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewUpdateStatus(repo, nil, nil)
	ctx := context.Background()

	for _, next := range []string{"confirmed", "in_progress", "completed"} {
		got, err := uc.Execute(ctx, ap.ID, next, ownerActor)
		require.NoError(t, err, next)
		assert.Equal(t, next, got.Status)
	}

	// completed is terminal
	_, err := uc.Execute(ctx, ap.ID, "confirmed", ownerActor)
	assert.True(t, httperr.IsBusiness(err, "illegal_transition"))
}

func TestUpdateStatusRequiresSalonRole(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewUpdateStatus(repo, nil, nil)

	// even the owning customer cannot confirm their own appointment
	_, err := uc.Execute(context.Background(), ap.ID, "confirmed", customerActor)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	otherSalonOwner := domain.Actor{UserID: 7, Role: models.RoleSalonOwner, SalonID: 2}
	_, err = uc.Execute(context.Background(), ap.ID, "confirmed", otherSalonOwner)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))
}

func TestUpdateStatusSkipIllegal(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewUpdateStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, "completed", ownerActor)
	assert.True(t, httperr.IsBusiness(err, "illegal_transition"))
	assert.Equal(t, string(domain.StatusPending), repo.appointments[ap.ID].Status)
}

// ---------------------------------------------------
// Reschedule
// ---------------------------------------------------

func TestReschedule(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	// confirm first so the pending reset is observable
	_, err := NewUpdateStatus(repo, nil, nil).
		Execute(context.Background(), ap.ID, "confirmed", ownerActor)
	require.NoError(t, err)

	uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		NewDate:       "2026-09-08",
		NewTime:       "14:00",
		Actor:         customerActor,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-08", got.AppointmentDate)
	assert.Equal(t, "14:00", got.AppointmentTime)
	assert.Equal(t, string(domain.StatusPending), got.Status) // back to pending

	// the old slot is free again
	occupied, err := repo.IsOccupied(context.Background(), 1, 10, "2026-09-07", "10:00", 0)
	require.NoError(t, err)
	assert.False(t, occupied)
}

func TestRescheduleToOccupiedSlot(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")
	_ = seedBooking(t, repo, "2026-09-07", "11:00")

	uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		NewDate:       "2026-09-07",
		NewTime:       "11:00",
		Actor:         customerActor,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// the appointment stays at its original slot
	stored := repo.appointments[ap.ID]
	assert.Equal(t, "2026-09-07", stored.AppointmentDate)
	assert.Equal(t, "10:00", stored.AppointmentTime)
}

func TestRescheduleToOwnSlot(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

	// moving onto its own slot is not a conflict
	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		NewDate:       "2026-09-07",
		NewTime:       "10:00",
		Actor:         customerActor,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.AppointmentTime)
}

func TestRescheduleOnlyByOwner(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedBooking(t, repo, "2026-09-07", "10:00")

	uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

	in := RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		NewDate:       "2026-09-08",
		NewTime:       "14:00",
	}

	in.Actor = strangerActor
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "not_appointment_owner"))

	// salon staff use cancel + rebook, not reschedule
	in.Actor = ownerActor
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "not_appointment_owner"))
}

func TestRescheduleGatesOnNewSlot(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		clock   string
		wantErr string
	}{
		{"closed friday", "2026-09-11", "10:00", "salon_closed"},
		{"outside window", "2026-09-08", "08:00", "outside_working_hours"},
		{"in the past", "2026-08-25", "10:00", "time_in_past"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			seedSalon(repo)
			ap := seedBooking(t, repo, "2026-09-07", "10:00")

			uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

			_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
				AppointmentID: ap.ID,
				NewDate:       tc.date,
				NewTime:       tc.clock,
				Actor:         customerActor,
			})
			assert.True(t, httperr.IsBusiness(err, tc.wantErr),
				"want %s, got %v", tc.wantErr, err)
		})
	}
}

func TestRescheduleInsideLeadTime(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	// 90 minutes before start, under the 2-hour lead time
	ap := seedBooking(t, repo, "2026-09-01", "11:30")

	uc := NewRescheduleAppointment(repo, nil, nil).WithNow(fixedNow)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		NewDate:       "2026-09-08",
		NewTime:       "14:00",
		Actor:         customerActor,
	})
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_passed"))
}
