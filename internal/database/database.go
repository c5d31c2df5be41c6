package database

import sq "github.com/Masterminds/squirrel"

// PSQL строит запросы с плейсхолдерами postgres.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	CalendarsTable   = "calendars"
	EventsTable      = "events"
	RecurrencesTable = "event_recurrences"
	RemindersTable   = "reminders"
)
