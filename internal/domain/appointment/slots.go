package appointment

import (
	"fmt"
	"time"
)

// ===============================
// Slot Generator
// ===============================

const DefaultGranularityMin = 30

// GenerateCandidates enumerates the bookable grid for one day: it
// starts at openingTime, steps by granularity minutes and stops
// strictly before closingTime. It does not filter by existing
// bookings and does not know about closed days; callers check
// IsOpen first.
func GenerateCandidates(openingTime, closingTime string, granularityMin int) []string {
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}

	open, err := clockMinutes(openingTime)
	if err != nil {
		return nil
	}
	close, err := clockMinutes(closingTime)
	if err != nil {
		return nil
	}

	var candidates []string
	for cur := open; cur < close; cur += granularityMin {
		candidates = append(candidates, fmt.Sprintf("%02d:%02d", cur/60, cur%60))
	}
	return candidates
}

func clockMinutes(timeStr string) (int, error) {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
