package reminders

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

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
		"rm.id",
		"rm.event_id",
		"rm.remind_at",
		"rm.channel",
		"rm.read",
		"e.title event_title",
		"e.calendar_id",
		"c.owner_id",
	).
	From(database.RemindersTable + " rm").
	Join(database.EventsTable + " e on e.id = rm.event_id").
	Join(database.CalendarsTable + " c on c.id = e.calendar_id")

type reminderDTO struct {
	ID         int64
	EventID    int64
	RemindAt   time.Time
	Channel    string
	Read       bool
	EventTitle string
	CalendarID int64
	OwnerID    int64
}

func mapToReminder(dto *reminderDTO, loc *time.Location) *model.ActiveReminder {
	return &model.ActiveReminder{
		Reminder: model.Reminder{
			ID:       dto.ID,
			EventID:  dto.EventID,
			RemindAt: dto.RemindAt.In(loc),
			Channel:  model.Channel(dto.Channel),
			Read:     dto.Read,
		},
		EventTitle: dto.EventTitle,
		CalendarID: dto.CalendarID,
		OwnerID:    dto.OwnerID,
	}
}

func activeUnread(ownerID int64, now time.Time) sq.Sqlizer {
	return sq.And{
		sq.Eq{"c.owner_id": ownerID},
		sq.LtOrEq{"rm.remind_at": now},
		sq.Eq{"rm.read": false},
	}
}

// GetActiveUnread returns due unread reminders of the owner, earliest first.
func (r *Repository) GetActiveUnread(ctx context.Context, q database.Queryable, ownerID int64, now time.Time) ([]*model.ActiveReminder, error) {
	qb := baseQuery.
		Where(activeUnread(ownerID, now)).
		OrderBy("rm.remind_at", "rm.id")

	var dtos []*reminderDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.ActiveReminder, len(dtos))
	for i, d := range dtos {
		res[i] = mapToReminder(d, r.loc)
	}

	return res, nil
}

func (*Repository) CountActiveUnread(ctx context.Context, q database.Queryable, ownerID int64, now time.Time) (int64, error) {
	qb := database.PSQL.
		Select("count(*)").
		From(database.RemindersTable + " rm").
		Join(database.EventsTable + " e on e.id = rm.event_id").
		Join(database.CalendarsTable + " c on c.id = e.calendar_id").
		Where(activeUnread(ownerID, now))

	var count int64
	if err := q.Get(ctx, &count, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return count, nil
}

func (r *Repository) GetReminder(ctx context.Context, q database.Queryable, id int64) (*model.ActiveReminder, error) {
	qb := baseQuery.
		Where(sq.Eq{"rm.id": id})

	dto := &reminderDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToReminder(dto, r.loc), nil
}

func (*Repository) MarkRead(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Update(database.RemindersTable).
		Set("read", true).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
