package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
)

func TestAvailableTimesFullDay(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewAvailableTimes(repo, nil)

	times, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "2026-09-07",
	})
	require.NoError(t, err)

	// 09:00 .. 17:30 on the 30-minute grid
	require.Len(t, times, 18)
	assert.Equal(t, "09:00", times[0])
	assert.Equal(t, "17:30", times[17])
	assert.NotContains(t, times, "18:00")
}

func TestAvailableTimesExcludesBooked(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	seedBooking(t, repo, "2026-09-07", "10:00")
	seedBooking(t, repo, "2026-09-07", "14:30")

	uc := NewAvailableTimes(repo, nil)

	times, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "2026-09-07",
	})
	require.NoError(t, err)

	assert.Len(t, times, 16)
	assert.NotContains(t, times, "10:00")
	assert.NotContains(t, times, "14:30")
	assert.Contains(t, times, "10:30")
}

func TestAvailableTimesCancelledSlotReturns(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	ap := seedBooking(t, repo, "2026-09-07", "10:00")
	repo.appointments[ap.ID].Status = string(domain.StatusCancelled)

	uc := NewAvailableTimes(repo, nil)

	times, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "2026-09-07",
	})
	require.NoError(t, err)
	assert.Contains(t, times, "10:00")
}

func TestAvailableTimesClosedDay(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewAvailableTimes(repo, nil)

	times, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "2026-09-11", // friday
	})
	require.NoError(t, err)

	assert.NotNil(t, times)
	assert.Empty(t, times)
}

func TestAvailableTimesNotFound(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewAvailableTimes(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, domain.AvailabilityInput{
		SalonID: 99, StaffID: 10, Date: "2026-09-07",
	})
	assert.True(t, httperr.IsBusiness(err, "salon_not_found"))

	_, err = uc.Execute(ctx, domain.AvailabilityInput{
		SalonID: 1, StaffID: 99, Date: "2026-09-07",
	})
	assert.True(t, httperr.IsBusiness(err, "staff_not_found"))

	_, err = uc.Execute(ctx, domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "07/09/2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestCacheableGrid(t *testing.T) {
	assert.True(t, cacheableGrid(0))
	assert.True(t, cacheableGrid(domain.DefaultGranularityMin))

	assert.False(t, cacheableGrid(15))
	assert.False(t, cacheableGrid(60))
}

func TestAvailableTimesCustomGranularity(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewAvailableTimes(repo, nil)

	times, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, StaffID: 10, Date: "2026-09-07", GranularityMin: 60,
	})
	require.NoError(t, err)
	assert.Len(t, times, 9) // 09:00 .. 17:00 hourly
}
