package calendars

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"name",
		"description",
		"owner_id",
		"created_at",
	).
	From(database.CalendarsTable)

type calendarDTO struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
}

func mapToCalendar(dto *calendarDTO) *model.Calendar {
	return &model.Calendar{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		OwnerID:     dto.OwnerID,
		CreatedAt:   dto.CreatedAt,
	}
}

func (*Repository) GetCalendar(ctx context.Context, q database.Queryable, id int64) (*model.Calendar, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &calendarDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToCalendar(dto), nil
}

func (*Repository) GetOwnerCalendars(ctx context.Context, q database.Queryable, ownerID int64) ([]*model.Calendar, error) {
	qb := baseQuery.
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id")

	var dtos []*calendarDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Calendar, len(dtos))
	for i, d := range dtos {
		res[i] = mapToCalendar(d)
	}

	return res, nil
}

func (*Repository) CreateCalendar(ctx context.Context, q database.Queryable, calendar *model.Calendar) (int64, error) {
	qb := database.PSQL.
		Insert(database.CalendarsTable).
		Columns("name", "description", "owner_id", "created_at").
		Values(
			calendar.Name,
			calendar.Description,
			calendar.OwnerID,
			calendar.CreatedAt,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

func (*Repository) UpdateCalendar(ctx context.Context, q database.Queryable, calendar *model.Calendar) error {
	qb := database.PSQL.
		Update(database.CalendarsTable).
		SetMap(map[string]interface{}{
			"name":        calendar.Name,
			"description": calendar.Description,
		}).
		Where(sq.Eq{"id": calendar.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// DeleteCalendar removes the calendar; its events go with it through the foreign keys.
func (*Repository) DeleteCalendar(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.CalendarsTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
