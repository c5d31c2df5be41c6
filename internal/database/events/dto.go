package events

import (
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

type eventDTO struct {
	ID          int64
	CalendarID  int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Priority    string
	Done        bool
	CreatedAt   time.Time

	RecurrenceID   *int64
	FromDate       *time.Time
	UntilDate      *time.Time
	RecurrenceType *string

	ReminderID *int64
	RemindAt   *time.Time
	Channel    *string
	Read       *bool
}

func mapToEvent(dto *eventDTO, loc *time.Location) *model.Event {
	event := &model.Event{
		ID:          dto.ID,
		CalendarID:  dto.CalendarID,
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime.In(loc),
		Priority:    model.Priority(dto.Priority),
		Done:        dto.Done,
		CreatedAt:   dto.CreatedAt.In(loc),
	}

	if dto.EndTime != nil {
		end := dto.EndTime.In(loc)
		event.EndTime = &end
	}

	if dto.RecurrenceID != nil {
		event.Recurrence = &model.EventRecurrence{
			ID:        *dto.RecurrenceID,
			EventID:   dto.ID,
			FromDate:  deref(dto.FromDate),
			UntilDate: dto.UntilDate,
			Type:      model.RecurrenceType(deref(dto.RecurrenceType)),
		}
	}

	if dto.ReminderID != nil {
		event.Reminder = &model.Reminder{
			ID:       *dto.ReminderID,
			EventID:  dto.ID,
			RemindAt: deref(dto.RemindAt).In(loc),
			Channel:  model.Channel(deref(dto.Channel)),
			Read:     deref(dto.Read),
		}
	}

	return event
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
