package events

import (
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

// Spawner derives the next occurrence of a completed recurring event.
type Spawner struct {
	clock clock.Clock
}

func NewSpawner(clk clock.Clock) *Spawner {
	return &Spawner{clock: clk}
}

// SpawnNext returns the successor of completed, or nil when the recurrence is
// disabled or the next start falls after the recurrence's until date.
// The successor keeps the duration of completed and the offset of its reminder.
func (s *Spawner) SpawnNext(completed *model.Event) *model.Event {
	rec := completed.Recurrence
	if !rec.Enabled() {
		return nil
	}

	nextStart, ok := NextOccurrence(completed.StartTime, rec.Type)
	if !ok {
		return nil
	}

	if rec.UntilDate != nil && model.DateOf(nextStart).After(model.DateOf(*rec.UntilDate)) {
		return nil
	}

	next := &model.Event{
		CalendarID:  completed.CalendarID,
		Title:       completed.Title,
		Description: completed.Description,
		StartTime:   nextStart,
		Priority:    completed.Priority,
		Done:        false,
		CreatedAt:   s.clock.Now(),
	}

	if completed.EndTime != nil {
		end := nextStart.Add(completed.Duration())
		next.EndTime = &end
	}

	next.Recurrence = &model.EventRecurrence{
		FromDate:  model.DateOf(nextStart),
		UntilDate: copyDate(rec.UntilDate),
		Type:      rec.Type,
	}

	if r := completed.Reminder; r != nil {
		offset := r.RemindAt.Sub(completed.StartTime)
		next.Reminder = &model.Reminder{
			RemindAt: nextStart.Add(offset),
			Channel:  r.Channel,
			Read:     false,
		}
	}

	return next
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := model.DateOf(*t)
	return &d
}
