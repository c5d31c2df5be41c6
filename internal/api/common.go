package api

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/business/events"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

type calendarResp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func mapToCalendarResp(c *model.Calendar) (*calendarResp, error) {
	return &calendarResp{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}, nil
}

type eventResp struct {
	ID          int64           `json:"id"`
	CalendarID  int64           `json:"calendar_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     *time.Time      `json:"end_time,omitempty"`
	Priority    model.Priority  `json:"priority"`
	Done        bool            `json:"done"`
	CreatedAt   time.Time       `json:"created_at"`
	Recurrence  *recurrenceResp `json:"recurrence,omitempty"`
	Reminder    *reminderResp   `json:"reminder,omitempty"`
}

type recurrenceResp struct {
	ID        int64                `json:"id"`
	EventID   int64                `json:"event_id"`
	FromDate  string               `json:"from_date"`
	UntilDate *string              `json:"until_date,omitempty"`
	Type      model.RecurrenceType `json:"type"`
	Rule      string               `json:"rrule,omitempty"`
}

type reminderResp struct {
	ID         int64         `json:"id"`
	EventID    int64         `json:"event_id"`
	RemindAt   time.Time     `json:"remind_at"`
	Channel    model.Channel `json:"channel"`
	Read       bool          `json:"read"`
	EventTitle string        `json:"event_title,omitempty"`
}

func mapToEventResp(e *model.Event) (*eventResp, error) {
	resp := &eventResp{
		ID:          e.ID,
		CalendarID:  e.CalendarID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Priority:    e.Priority,
		Done:        e.Done,
		CreatedAt:   e.CreatedAt,
	}

	if r := e.Recurrence; r != nil {
		rule, err := events.Rule(e)
		if err != nil {
			return nil, fmt.Errorf("render rule: %w", err)
		}

		resp.Recurrence = &recurrenceResp{
			ID:       r.ID,
			EventID:  e.ID,
			FromDate: r.FromDate.Format(dateFormat),
			Type:     r.Type,
			Rule:     rule,
		}
		if r.UntilDate != nil {
			until := r.UntilDate.Format(dateFormat)
			resp.Recurrence.UntilDate = &until
		}
	}

	if r := e.Reminder; r != nil {
		resp.Reminder = &reminderResp{
			ID:       r.ID,
			EventID:  e.ID,
			RemindAt: r.RemindAt,
			Channel:  r.Channel,
			Read:     r.Read,
		}
	}

	return resp, nil
}

func mapToReminderResp(r *model.ActiveReminder) (*reminderResp, error) {
	return &reminderResp{
		ID:         r.ID,
		EventID:    r.EventID,
		RemindAt:   r.RemindAt,
		Channel:    r.Channel,
		Read:       r.Read,
		EventTitle: r.EventTitle,
	}, nil
}
