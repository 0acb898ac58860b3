package services

import (
	"strings"
	"time"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// currentPeriod returns the [start, end) window of the period instance that
// contains now, in UTC. Weeks start on Monday. ok is false for a period
// label that is not one of the known windows.
func currentPeriod(period string, now time.Time) (start, end time.Time, ok bool) {
	now = now.UTC()
	switch strings.ToLower(strings.TrimSpace(period)) {
	case PeriodWeekly:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		sinceMonday := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -sinceMonday)
		end = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
