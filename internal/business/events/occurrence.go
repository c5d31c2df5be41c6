package events

import (
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

// NextOccurrence computes the start of the occurrence following anchor.
// The second result is false when the type yields no further occurrence,
// which callers treat as the end of the cascade.
func NextOccurrence(anchor time.Time, t model.RecurrenceType) (time.Time, bool) {
	switch t {
	case model.RecurrenceTypeNone:
		return time.Time{}, false
	case model.RecurrenceTypeDaily:
		return anchor.AddDate(0, 0, 1), true
	case model.RecurrenceTypeWeekly:
		return anchor.AddDate(0, 0, 7), true
	case model.RecurrenceTypeMonthly:
		return addMonths(anchor, 1), true
	case model.RecurrenceTypeYearly:
		return addMonths(anchor, 12), true
	}

	return time.Time{}, false
}

// addMonths shifts t by n calendar months, clamping the day to the last day of the target month.
// time.AddDate would normalize Jan 31 + 1 month into March instead.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()

	if last := daysIn(ty, tm); d > last {
		d = last
	}

	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
