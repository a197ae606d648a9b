package appointment

import (
	"strings"
	"time"

	"github.com/nailbook/salon-scheduler/internal/httperr"
	"github.com/nailbook/salon-scheduler/internal/models"
)

// ===============================
// Calendar Policy
// ===============================

// ClosedDaySet parses the salon's closed-days field ("friday" or
// "friday, saturday") into a lowercase weekday set.
func ClosedDaySet(closedDays string) map[string]bool {
	set := make(map[string]bool)
	for _, day := range strings.Split(closedDays, ",") {
		day = strings.ToLower(strings.TrimSpace(day))
		if day != "" {
			set[day] = true
		}
	}
	return set
}

// IsOpen reports whether the salon works on the date's weekday.
// There is no holiday calendar beyond this weekly pattern.
func IsOpen(salon *models.Salon, date time.Time) bool {
	weekday := strings.ToLower(date.Weekday().String())
	return !ClosedDaySet(salon.ClosedDays)[weekday]
}

// WorkingWindow returns the stored opening/closing pair. Opening
// before closing is guaranteed at salon creation and update.
func WorkingWindow(salon *models.Salon) (string, string) {
	return salon.OpeningTime, salon.ClosingTime
}

// ===============================
// Date / time values
// ===============================

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

// StartAt combines the stored date and time into a moment in the
// salon's location.
func StartAt(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time")
	}
	return t, nil
}

// WithinWindow checks the appointment time against the working
// window, both bounds inclusive. Zero-padded HH:MM compares
// lexicographically.
func WithinWindow(salon *models.Salon, timeStr string) bool {
	open, close := WorkingWindow(salon)
	return timeStr >= open && timeStr <= close
}
