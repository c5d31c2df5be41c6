package events

import (
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
)

// Repository hands out times in loc. Recurrence arithmetic and date windows
// depend on the zone, so loaded instants never stay in the process zone.
type Repository struct {
	loc *time.Location
}

func NewRepository(loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{loc: loc}
}

var baseQuery = database.PSQL.
	Select(
		"e.id",
		"e.calendar_id",
		"e.title",
		"e.description",
		"e.start_time",
		"e.end_time",
		"e.priority",
		"e.done",
		"e.created_at",
		"r.id recurrence_id",
		"r.from_date",
		"r.until_date",
		"r.type recurrence_type",
		"rm.id reminder_id",
		"rm.remind_at",
		"rm.channel",
		"rm.read",
	).
	From(database.EventsTable + " e").
	LeftJoin(database.RecurrencesTable + " r on r.event_id = e.id").
	LeftJoin(database.RemindersTable + " rm on rm.event_id = e.id")
