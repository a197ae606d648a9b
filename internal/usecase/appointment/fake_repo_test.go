package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory domain.Repository for use case tests.
type fakeRepo struct {
	salons       map[uint]*models.Salon
	staff        map[uint]*models.Staff
	services     map[uint]*models.Service
	users        map[uint]*models.User
	appointments map[uint]*models.Appointment

	nextUserID uint
	nextApID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:       make(map[uint]*models.Salon),
		staff:        make(map[uint]*models.Staff),
		services:     make(map[uint]*models.Service),
		users:        make(map[uint]*models.User),
		appointments: make(map[uint]*models.Appointment),
		nextUserID:   100,
		nextApID:     1000,
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s, ok := f.salons[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetStaff(_ context.Context, salonID, staffID uint) (*models.Staff, error) {
	if st, ok := f.staff[staffID]; ok && st.SalonID == salonID {
		cp := *st
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	if sv, ok := f.services[serviceID]; ok && sv.SalonID == salonID {
		cp := *sv
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetOrCreateCustomerByPhone(
	_ context.Context,
	name string,
	phone string,
) (*models.User, error) {

	var found *models.User
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			if found == nil || u.ID < found.ID {
				found = u
			}
		}
	}
	if found != nil {
		cp := *found
		return &cp, nil
	}

	f.nextUserID++
	u := &models.User{
		ID:    f.nextUserID,
		Name:  name,
		Phone: &phone,
		Role:  models.RoleCustomer,
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) EnsureCustomerRole(_ context.Context, userID uint) error {
	if u, ok := f.users[userID]; ok && u.Role != models.RoleCustomer {
		u.Role = models.RoleCustomer
	}
	return nil
}

func (f *fakeRepo) slotOccupied(salonID, staffID uint, date, timeStr string, excludeID uint) bool {
	for _, ap := range f.appointments {
		if ap.ID == excludeID {
			continue
		}
		if ap.SalonID == salonID &&
			ap.StaffID == staffID &&
			ap.AppointmentDate == date &&
			ap.AppointmentTime == timeStr &&
			domain.IsOccupying(domain.Status(ap.Status)) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateAppointmentExclusive(_ context.Context, ap *models.Appointment) error {
	if f.slotOccupied(ap.SalonID, ap.StaffID, ap.AppointmentDate, ap.AppointmentTime, 0) {
		return httperr.ErrSlotConflict("slot_taken")
	}

	f.nextApID++
	ap.ID = f.nextApID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) IsOccupied(
	_ context.Context,
	salonID, staffID uint,
	date, timeStr string,
	excludeID uint,
) (bool, error) {
	return f.slotOccupied(salonID, staffID, date, timeStr, excludeID), nil
}

func (f *fakeRepo) BookedTimes(
	_ context.Context,
	salonID, staffID uint,
	date string,
) ([]string, error) {

	var times []string
	for _, ap := range f.appointments {
		if ap.SalonID == salonID &&
			ap.StaffID == staffID &&
			ap.AppointmentDate == date &&
			domain.IsOccupying(domain.Status(ap.Status)) {
			times = append(times, ap.AppointmentTime)
		}
	}
	return times, nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errNotFound
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) RescheduleExclusive(
	_ context.Context,
	ap *models.Appointment,
	newDate, newTime string,
) error {

	if f.slotOccupied(ap.SalonID, ap.StaffID, newDate, newTime, ap.ID) {
		return httperr.ErrSlotConflict("slot_taken")
	}

	ap.AppointmentDate = newDate
	ap.AppointmentTime = newTime
	ap.Status = string(domain.StatusPending)

	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ---------------------------------------------------
// Shared fixture
// ---------------------------------------------------

// fixedNow pins the clock to Tuesday 2026-09-01 10:00 UTC.
func fixedNow(string) time.Time {
	return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
}

func seedSalon(repo *fakeRepo) {
	repo.salons[1] = &models.Salon{
		ID:          1,
		Name:        "Rose Beauty",
		OpeningTime: "09:00",
		ClosingTime: "18:00",
		ClosedDays:  "friday",
		Timezone:    "UTC",
		IsActive:    true,
	}
	repo.staff[10] = &models.Staff{ID: 10, SalonID: 1, UserID: 2, IsAvailable: true}
	repo.services[20] = &models.Service{
		ID: 20, SalonID: 1, Name: "Manicure", Price: 500, DurationMin: 45, IsActive: true,
	}

	email := "owner@example.com"
	repo.users[1] = &models.User{ID: 1, Name: "Owner", Email: &email, Role: models.RoleSalonOwner}

	phone := "09121234567"
	repo.users[3] = &models.User{ID: 3, Name: "Sara", Phone: &phone, Role: models.RoleCustomer}
}
