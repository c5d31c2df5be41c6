package model

import (
	"fmt"
	"time"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

type EventCreate struct {
	CalendarID  int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Priority    Priority
	Recurrence  *RecurrenceCreate
	Reminder    *ReminderCreate
}

type RecurrenceCreate struct {
	FromDate  time.Time
	UntilDate *time.Time
	Type      RecurrenceType
}

// Enabled reports whether the input asks for a repetition at all.
func (r *RecurrenceCreate) Enabled() bool {
	return r != nil && r.Type != "" && r.Type != RecurrenceTypeNone
}

type ReminderCreate struct {
	RemindAt *time.Time
	Channel  Channel
}

func (r *ReminderCreate) Enabled() bool {
	return r != nil && r.RemindAt != nil && r.Channel != ""
}

type Event struct {
	ID          int64
	CalendarID  int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Priority    Priority
	Done        bool
	CreatedAt   time.Time
	Recurrence  *EventRecurrence
	Reminder    *Reminder
}

// Duration returns the length of the event, zero when it has no end.
func (e *Event) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// Recurring reports whether completing the event may produce a successor.
func (e *Event) Recurring() bool {
	return e.Recurrence.Enabled()
}

type EventRecurrence struct {
	ID        int64
	EventID   int64
	FromDate  time.Time
	UntilDate *time.Time
	Type      RecurrenceType
}

func (r *EventRecurrence) Enabled() bool {
	return r != nil && r.Type != "" && r.Type != RecurrenceTypeNone
}

type Reminder struct {
	ID       int64
	EventID  int64
	RemindAt time.Time
	Channel  Channel
	Read     bool
}

// ActiveReminder is a reminder joined with the data needed to show it to its owner.
type ActiveReminder struct {
	Reminder
	EventTitle string
	CalendarID int64
	OwnerID    int64
}

const (
	MaxCalendarNameLength        = 100
	MaxCalendarDescriptionLength = 500
)

// CalendarInfo holds the user editable fields of a calendar.
type CalendarInfo struct {
	Name        string
	Description string
}

type Calendar struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
}

// DateOf drops the clock part of t, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p *Priority) UnmarshalText(text []byte) error {
	v := Priority(text)
	if !v.Valid() {
		return fmt.Errorf("unknown priority %q", text)
	}
	*p = v
	return nil
}

type RecurrenceType string

const (
	RecurrenceTypeNone    RecurrenceType = "NONE"
	RecurrenceTypeDaily   RecurrenceType = "DAILY"
	RecurrenceTypeWeekly  RecurrenceType = "WEEKLY"
	RecurrenceTypeMonthly RecurrenceType = "MONTHLY"
	RecurrenceTypeYearly  RecurrenceType = "YEARLY"
)

// RecurrenceTypes lists every declared recurrence type.
var RecurrenceTypes = []RecurrenceType{
	RecurrenceTypeNone,
	RecurrenceTypeDaily,
	RecurrenceTypeWeekly,
	RecurrenceTypeMonthly,
	RecurrenceTypeYearly,
}

func (t RecurrenceType) Valid() bool {
	for _, v := range RecurrenceTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t *RecurrenceType) UnmarshalText(text []byte) error {
	v := RecurrenceType(text)
	if !v.Valid() {
		return fmt.Errorf("unknown recurrence type %q", text)
	}
	*t = v
	return nil
}

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelPush  Channel = "PUSH"
	ChannelSMS   Channel = "SMS"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelSMS:
		return true
	}
	return false
}

func (c *Channel) UnmarshalText(text []byte) error {
	v := Channel(text)
	if !v.Valid() {
		return fmt.Errorf("unknown channel %q", text)
	}
	*c = v
	return nil
}
