package calendars

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

type Service struct {
	db        database.PGX
	clock     clock.Clock
	calendars calendarsRepository
}

type calendarsRepository interface {
	CreateCalendar(ctx context.Context, q database.Queryable, calendar *model.Calendar) (int64, error)
	GetCalendar(ctx context.Context, q database.Queryable, id int64) (*model.Calendar, error)
	GetOwnerCalendars(ctx context.Context, q database.Queryable, ownerID int64) ([]*model.Calendar, error)
	UpdateCalendar(ctx context.Context, q database.Queryable, calendar *model.Calendar) error
	DeleteCalendar(ctx context.Context, q database.Queryable, id int64) error
}

func NewService(db database.PGX, clk clock.Clock, repo calendarsRepository) *Service {
	return &Service{
		db:        db,
		clock:     clk,
		calendars: repo,
	}
}

func (s *Service) CreateCalendar(ctx context.Context, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error) {
	if ownerID <= 0 {
		return nil, model.ErrUnauthorized
	}

	calendar := &model.Calendar{
		Name:        info.Name,
		Description: info.Description,
		OwnerID:     ownerID,
		CreatedAt:   s.clock.Now(),
	}

	id, err := s.calendars.CreateCalendar(ctx, s.db, calendar)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.CreateCalendar: %w", err)
	}
	calendar.ID = id

	return calendar, nil
}

func (s *Service) GetOwnerCalendars(ctx context.Context, ownerID int64) ([]*model.Calendar, error) {
	if ownerID <= 0 {
		return nil, model.ErrUnauthorized
	}

	calendars, err := s.calendars.GetOwnerCalendars(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.GetOwnerCalendars: %w", err)
	}

	return calendars, nil
}

func (s *Service) UpdateCalendar(ctx context.Context, calendarID, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error) {
	var calendar *model.Calendar

	if err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		var err error
		calendar, err = s.ownedCalendar(ctx, tx, calendarID, ownerID)
		if err != nil {
			return err
		}

		calendar.Name = info.Name
		calendar.Description = info.Description

		if err := s.calendars.UpdateCalendar(ctx, tx, calendar); err != nil {
			return fmt.Errorf("calendarsRepository.UpdateCalendar: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return calendar, nil
}

// DeleteCalendar removes the calendar together with all of its events.
func (s *Service) DeleteCalendar(ctx context.Context, calendarID, ownerID int64) error {
	return database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := s.ownedCalendar(ctx, tx, calendarID, ownerID); err != nil {
			return err
		}

		if err := s.calendars.DeleteCalendar(ctx, tx, calendarID); err != nil {
			return fmt.Errorf("calendarsRepository.DeleteCalendar: %w", err)
		}

		return nil
	})
}

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
