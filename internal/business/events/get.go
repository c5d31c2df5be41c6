package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

func (s *Service) GetEvent(ctx context.Context, eventID, ownerID int64) (*model.Event, error) {
	return s.ownedEvent(ctx, s.db, eventID, ownerID)
}

func (s *Service) GetCalendarEvents(ctx context.Context, calendarID, ownerID int64) ([]*model.Event, error) {
	if _, err := s.ownedCalendar(ctx, s.db, calendarID, ownerID); err != nil {
		return nil, err
	}

	events, err := s.events.GetCalendarEvents(ctx, s.db, calendarID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetCalendarEvents: %w", err)
	}

	return events, nil
}
