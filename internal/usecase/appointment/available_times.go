package appointment

import (
	"context"

	"github.com/nailbook/salon-scheduler/internal/cache"
	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/timezone"
)

type AvailableTimes struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewAvailableTimes(
	repo domain.Repository,
	availCache *cache.Availability,
) *AvailableTimes {
	return &AvailableTimes{
		repo:  repo,
		cache: availCache,
	}
}

// Execute returns the ordered free times for one staff/date:
// the candidate grid minus slots occupied by pending, confirmed or
// in_progress appointments. A closed day yields an empty list, not
// an error.
func (uc *AvailableTimes) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found")
	}

	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, httperr.ErrNotFound("staff_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	date, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}

	if !domain.IsOpen(salon, date) {
		return []string{}, nil
	}

	// the cache key carries no granularity, so only the default grid
	// is cached; other grids always recompute
	cacheable := cacheableGrid(in.GranularityMin)

	if cacheable {
		if times, ok := uc.cache.Get(ctx, in.SalonID, in.StaffID, in.Date); ok {
			return times, nil
		}
	}

	candidates := domain.GenerateCandidates(
		salon.OpeningTime,
		salon.ClosingTime,
		in.GranularityMin,
	)

	booked, err := uc.repo.BookedTimes(ctx, in.SalonID, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	times := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if !taken[t] {
			times = append(times, t)
		}
	}

	if cacheable {
		uc.cache.Set(ctx, in.SalonID, in.StaffID, in.Date, times)
	}

	return times, nil
}

func cacheableGrid(granularityMin int) bool {
	return granularityMin == 0 || granularityMin == domain.DefaultGranularityMin
}
