package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/nailbook/salon-scheduler/internal/domain/appointment"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseQueryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func isValidClock(timeStr string) bool {
	_, err := time.Parse(domain.TimeLayout, timeStr)
	return err == nil && len(timeStr) == 5
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(domain.DateLayout, dateStr)
	return err == nil && len(dateStr) == 10
}

// validateWindow guards the opening < closing invariant at salon
// creation and update.
func validateWindow(open, close string) bool {
	return isValidClock(open) && isValidClock(close) && open < close
}

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func validateClosedDays(closedDays string) bool {
	for day := range domain.ClosedDaySet(closedDays) {
		if !weekdayNames[day] {
			return false
		}
	}
	return true
}
