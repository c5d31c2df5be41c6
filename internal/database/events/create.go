package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

// CreateEvent inserts the event with its recurrence and reminder and fills in their ids.
// It should run inside a transaction so that a partially stored aggregate never becomes visible.
func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error) {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"calendar_id",
			"title",
			"description",
			"start_time",
			"end_time",
			"priority",
			"done",
			"created_at",
		).
		Values(
			event.CalendarID,
			event.Title,
			event.Description,
			event.StartTime,
			event.EndTime,
			string(event.Priority),
			event.Done,
			event.CreatedAt,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}
	event.ID = id

	if r := event.Recurrence; r != nil {
		r.EventID = id
		qb := database.PSQL.
			Insert(database.RecurrencesTable).
			Columns("event_id", "from_date", "until_date", "type").
			Values(r.EventID, r.FromDate, r.UntilDate, string(r.Type)).
			Suffix("returning id")

		if err := q.Get(ctx, &r.ID, qb); err != nil {
			return 0, fmt.Errorf("SQL request: %w", err)
		}
	}

	if r := event.Reminder; r != nil {
		r.EventID = id
		qb := database.PSQL.
			Insert(database.RemindersTable).
			Columns("event_id", "remind_at", "channel", "read").
			Values(r.EventID, r.RemindAt, string(r.Channel), r.Read).
			Suffix("returning id")

		if err := q.Get(ctx, &r.ID, qb); err != nil {
			return 0, fmt.Errorf("SQL request: %w", err)
		}
	}

	return id, nil
}
