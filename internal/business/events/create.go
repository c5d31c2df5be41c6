package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

func (s *Service) CreateEvent(ctx context.Context, ownerID int64, info *model.EventCreate) (*model.Event, error) {
	if _, err := s.ownedCalendar(ctx, s.db, info.CalendarID, ownerID); err != nil {
		return nil, err
	}

	event, err := s.builder.Build(info)
	if err != nil {
		return nil, err
	}

	if err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := s.events.CreateEvent(ctx, tx, event); err != nil {
			return fmt.Errorf("eventsRepository.CreateEvent: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return event, nil
}
