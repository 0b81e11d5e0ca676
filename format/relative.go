package format

import (
	"fmt"
	"math"
	"time"
)

const (
	daysPerMonth = 30
	daysPerYear  = 365
)

// RelativeTime formats the distance between t and now in whole days,
// bucketed in days, 30-day months and 365-day years.
// Partial days are rounded up, so anything within the last 24 hours is "1 day ago"
// and only identical instants are "today".
func RelativeTime(t, now time.Time, l Locale) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}

	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 0:
		return l.Today
	case days == 1:
		return l.OneDay
	case days < daysPerMonth:
		return fmt.Sprintf(l.ManyDays, days)
	}

	months := days / daysPerMonth
	switch {
	case months == 1:
		return l.OneMonth
	case months < 12:
		return fmt.Sprintf(l.ManyMonths, months)
	}

	// 360 to 364 days are 12 months but not yet a full year
	years := days / daysPerYear
	if years <= 1 {
		return l.OneYear
	}

	return fmt.Sprintf(l.ManyYears, years)
}
