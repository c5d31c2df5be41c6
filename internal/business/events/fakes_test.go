package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

type fakeTx struct {
	database.Queryable
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	database.Queryable
	txs []*fakeTx
}

func (d *fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

type fakeEvents struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*model.Event
	failOn string
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: make(map[int64]*model.Event)}
}

func (f *fakeEvents) CreateEvent(_ context.Context, _ database.Queryable, event *model.Event) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn == "create" {
		return 0, errors.New("insert failed")
	}

	f.nextID++
	event.ID = f.nextID
	if event.Recurrence != nil {
		event.Recurrence.ID = f.nextID
		event.Recurrence.EventID = f.nextID
	}
	if event.Reminder != nil {
		event.Reminder.ID = f.nextID
		event.Reminder.EventID = f.nextID
	}

	f.events[event.ID] = cloneEvent(event)
	return event.ID, nil
}

func (f *fakeEvents) GetEvent(_ context.Context, _ database.Queryable, id int64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return cloneEvent(e), nil
}

func (f *fakeEvents) GetCalendarEvents(_ context.Context, _ database.Queryable, calendarID int64) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var res []*model.Event
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.events[id]; ok && e.CalendarID == calendarID {
			res = append(res, cloneEvent(e))
		}
	}
	return res, nil
}

func (f *fakeEvents) UpdateEventDone(_ context.Context, _ database.Queryable, id int64, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn == "update" {
		return errors.New("update failed")
	}

	e, ok := f.events[id]
	if !ok {
		return model.ErrNoRecord
	}
	e.Done = done
	return nil
}

func (f *fakeEvents) DeleteEvent(_ context.Context, _ database.Queryable, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.events, id)
	return nil
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeEvents) stored(id int64) *model.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneEvent(f.events[id])
}

type fakeCalendars map[int64]*model.Calendar

func (f fakeCalendars) GetCalendar(_ context.Context, _ database.Queryable, id int64) (*model.Calendar, error) {
	c, ok := f[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return c, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	keys     []string
	unlocked int
	err      error
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)

	return func() {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
	}, nil
}

func cloneEvent(e *model.Event) *model.Event {
	if e == nil {
		return nil
	}
	c := *e
	c.EndTime = copyTime(e.EndTime)
	if e.Recurrence != nil {
		r := *e.Recurrence
		r.UntilDate = copyTime(e.Recurrence.UntilDate)
		c.Recurrence = &r
	}
	if e.Reminder != nil {
		r := *e.Reminder
		c.Reminder = &r
	}
	return &c
}

type testService struct {
	*Service
	db     *fakeDB
	events *fakeEvents
	locker *fakeLocker
}

// newTestService owns calendar 1 by user 1 and calendar 2 by user 2.
func newTestService() *testService {
	db := &fakeDB{}
	events := newFakeEvents()
	locker := &fakeLocker{}
	calendars := fakeCalendars{
		1: {ID: 1, Name: "Work", OwnerID: 1},
		2: {ID: 2, Name: "Home", OwnerID: 2},
	}

	s := NewService(db, zap.NewNop().Sugar(), clock.Fixed(testNow), locker, events, calendars, "-//test//EN")

	return &testService{Service: s, db: db, events: events, locker: locker}
}

func ptr[T any](v T) *T {
	return &v
}
