package events

import (
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

// Builder turns creation input into a new, not yet stored event aggregate.
type Builder struct {
	clock clock.Clock
}

func NewBuilder(clk clock.Clock) *Builder {
	return &Builder{clock: clk}
}

// Build fails with model.ErrInvalidRange when the end time is before the start time.
// Recurrence and reminder are attached only when their input is enabled.
func (b *Builder) Build(info *model.EventCreate) (*model.Event, error) {
	if info.EndTime != nil && info.EndTime.Before(info.StartTime) {
		return nil, model.ErrInvalidRange
	}

	priority := info.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	event := &model.Event{
		CalendarID:  info.CalendarID,
		Title:       info.Title,
		Description: info.Description,
		StartTime:   info.StartTime,
		EndTime:     copyTime(info.EndTime),
		Priority:    priority,
		Done:        false,
		CreatedAt:   b.clock.Now(),
	}

	if r := info.Recurrence; r.Enabled() {
		event.Recurrence = &model.EventRecurrence{
			FromDate:  model.DateOf(r.FromDate),
			UntilDate: copyDate(r.UntilDate),
			Type:      r.Type,
		}
	}

	if r := info.Reminder; r.Enabled() {
		event.Reminder = &model.Reminder{
			RemindAt: *r.RemindAt,
			Channel:  r.Channel,
			Read:     false,
		}
	}

	return event, nil
}
