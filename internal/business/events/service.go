package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	clock     clock.Clock
	locker    locker
	events    eventsRepository
	calendars calendarsRepository
	builder   *Builder
	spawner   *Spawner
	productID string
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error)
	GetEvent(ctx context.Context, q database.Queryable, id int64) (*model.Event, error)
	GetCalendarEvents(ctx context.Context, q database.Queryable, calendarID int64) ([]*model.Event, error)
	UpdateEventDone(ctx context.Context, q database.Queryable, id int64, done bool) error
	DeleteEvent(ctx context.Context, q database.Queryable, id int64) error
}

type calendarsRepository interface {
	GetCalendar(ctx context.Context, q database.Queryable, id int64) (*model.Calendar, error)
}

type locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	clk clock.Clock,
	locker locker,
	events eventsRepository,
	calendars calendarsRepository,
	productID string,
) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		clock:     clk,
		locker:    locker,
		events:    events,
		calendars: calendars,
		builder:   NewBuilder(clk),
		spawner:   NewSpawner(clk),
		productID: productID,
	}
}

// ownedCalendar loads the calendar and makes sure ownerID may act on it.
func (s *Service) ownedCalendar(ctx context.Context, q database.Queryable, calendarID, ownerID int64) (*model.Calendar, error) {
	if ownerID <= 0 {
		return nil, model.ErrUnauthorized
	}

	calendar, err := s.calendars.GetCalendar(ctx, q, calendarID)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.GetCalendar: %w", err)
	}

	if calendar.OwnerID != ownerID {
		return nil, model.ErrForbidden
	}

	return calendar, nil
}

func (s *Service) ownedEvent(ctx context.Context, q database.Queryable, eventID, ownerID int64) (*model.Event, error) {
	if ownerID <= 0 {
		return nil, model.ErrUnauthorized
	}

	event, err := s.events.GetEvent(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvent: %w", err)
	}

	if _, err := s.ownedCalendar(ctx, q, event.CalendarID, ownerID); err != nil {
		return nil, err
	}

	return event, nil
}
