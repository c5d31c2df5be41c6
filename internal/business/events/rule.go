package events

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/teambition/rrule-go"
)

// Rule renders the recurrence of event as an RFC 5545 RRULE value, empty when it does not repeat.
func Rule(event *model.Event) (string, error) {
	r := event.Recurrence
	if !r.Enabled() {
		return "", nil
	}

	var freq rrule.Frequency

	switch r.Type {
	case model.RecurrenceTypeDaily:
		freq = rrule.DAILY
	case model.RecurrenceTypeWeekly:
		freq = rrule.WEEKLY
	case model.RecurrenceTypeMonthly:
		freq = rrule.MONTHLY
	case model.RecurrenceTypeYearly:
		freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("unknown recurrence type: %v", r.Type)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  event.StartTime.UTC(),
	}

	if r.UntilDate != nil {
		// until is inclusive: the whole last day still counts
		u := *r.UntilDate
		opt.Until = time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, event.StartTime.Location()).UTC()
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return rule.OrigOptions.RRuleString(), nil
}
