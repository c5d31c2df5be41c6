package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
)

func (*Repository) UpdateEventDone(ctx context.Context, q database.Queryable, id int64, done bool) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		Set("done", done).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
