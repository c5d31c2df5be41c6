package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	ical "github.com/arran4/golang-ical"
)

const reminderChannelProperty ical.ComponentProperty = "X-REMINDER-CHANNEL"

// ExportCalendar renders the owner's calendar as an iCalendar document.
// Only pending events carry their RRULE: a completed recurring event has already
// handed the rule to its successor.
func (s *Service) ExportCalendar(ctx context.Context, calendarID, ownerID int64) (string, error) {
	calendar, err := s.ownedCalendar(ctx, s.db, calendarID, ownerID)
	if err != nil {
		return "", err
	}

	events, err := s.events.GetCalendarEvents(ctx, s.db, calendarID)
	if err != nil {
		return "", fmt.Errorf("eventsRepository.GetCalendarEvents: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(s.productID)
	cal.SetXWRCalName(calendar.Name)

	for _, e := range events {
		if err := addEvent(cal, e); err != nil {
			return "", fmt.Errorf("event %v: %w", e.ID, err)
		}
	}

	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, e *model.Event) error {
	ve := cal.AddEvent(fmt.Sprintf("event-%d@calendar-reminder", e.ID))
	ve.SetDtStampTime(e.CreatedAt)
	ve.SetCreatedTime(e.CreatedAt)
	ve.SetStartAt(e.StartTime)
	if e.EndTime != nil {
		ve.SetEndAt(*e.EndTime)
	}
	ve.SetSummary(e.Title)
	if e.Description != "" {
		ve.SetDescription(e.Description)
	}
	ve.SetProperty(ical.ComponentPropertyPriority, icsPriority(e.Priority))

	if !e.Done {
		rule, err := Rule(e)
		if err != nil {
			return err
		}
		if rule != "" {
			ve.AddRrule(rule)
		}
	}

	if r := e.Reminder; r != nil && !r.Read {
		alarm := ve.AddAlarm()
		alarm.SetAction(ical.ActionDisplay)
		alarm.SetTrigger(icsDuration(r.RemindAt.Sub(e.StartTime)))
		alarm.SetProperty(ical.ComponentPropertyDescription, e.Title)
		alarm.SetProperty(reminderChannelProperty, string(r.Channel))
	}

	return nil
}

func icsPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "1"
	case model.PriorityLow:
		return "9"
	default:
		return "5"
	}
}

// icsDuration formats d as an RFC 5545 duration, e.g. -PT30M or P1DT2H.
func icsDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteByte('P')

	days := int64(d / (24 * time.Hour))
	d %= 24 * time.Hour
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}

	h, m, sec := int64(d/time.Hour), int64(d%time.Hour/time.Minute), int64(d%time.Minute/time.Second)
	if h == 0 && m == 0 && sec == 0 {
		if days == 0 {
			b.WriteString("T0S")
		}
		return b.String()
	}

	b.WriteByte('T')
	if h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if sec > 0 {
		fmt.Fprintf(&b, "%dS", sec)
	}

	return b.String()
}
