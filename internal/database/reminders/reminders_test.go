package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	database.Queryable
	query  string
	args   []interface{}
	getErr error
}

func (r *recorder) record(sqlizer database.Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	r.query, r.args = query, args
	return err
}

func (r *recorder) Get(_ context.Context, _ interface{}, sqlizer database.Sqlizer) error {
	if err := r.record(sqlizer); err != nil {
		return err
	}
	return r.getErr
}

func (r *recorder) Select(_ context.Context, _ interface{}, sqlizer database.Sqlizer) error {
	return r.record(sqlizer)
}

func (r *recorder) Exec(_ context.Context, sqlizer database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, r.record(sqlizer)
}

func TestRepository_GetActiveUnread(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	q := &recorder{}

	_, err := NewRepository(time.UTC).GetActiveUnread(context.Background(), q, 3, now)
	require.NoError(t, err)

	assert.Contains(t, q.query, "JOIN events e on e.id = rm.event_id")
	assert.Contains(t, q.query, "JOIN calendars c on c.id = e.calendar_id")
	assert.Contains(t, q.query, "c.owner_id = $1")
	assert.Contains(t, q.query, "rm.remind_at <= $2")
	assert.Contains(t, q.query, "rm.read = $3")
	assert.Contains(t, q.query, "ORDER BY rm.remind_at, rm.id")
	assert.Equal(t, []interface{}{int64(3), now, false}, q.args)
}

func TestRepository_CountActiveUnread(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	q := &recorder{}

	_, err := NewRepository(time.UTC).CountActiveUnread(context.Background(), q, 3, now)
	require.NoError(t, err)

	assert.Contains(t, q.query, "SELECT count(*) FROM reminders rm")
	assert.Contains(t, q.query, "rm.remind_at <= $2")
	assert.Equal(t, []interface{}{int64(3), now, false}, q.args)
}

func TestRepository_GetReminder_NotFound(t *testing.T) {
	q := &recorder{getErr: pgx.ErrNoRows}

	_, err := NewRepository(time.UTC).GetReminder(context.Background(), q, 7)
	assert.ErrorIs(t, err, model.ErrNoRecord)
	assert.Contains(t, q.query, "WHERE rm.id = $1")
}

func TestRepository_MarkRead(t *testing.T) {
	q := &recorder{}

	require.NoError(t, NewRepository(time.UTC).MarkRead(context.Background(), q, 7))
	assert.Equal(t, "UPDATE reminders SET read = $1 WHERE id = $2", q.query)
	assert.Equal(t, []interface{}{true, int64(7)}, q.args)
}

func TestMapToReminder_Location(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	at := time.Date(2025, 1, 4, 22, 0, 0, 0, time.UTC)

	r := mapToReminder(&reminderDTO{ID: 1, RemindAt: at}, msk)
	assert.Equal(t, msk, r.RemindAt.Location())
	assert.True(t, r.RemindAt.Equal(at))
}
