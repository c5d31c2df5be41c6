package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

// MarkDone completes the event and, for a recurring one, stores its next occurrence
// in the same transaction.
func (s *Service) MarkDone(ctx context.Context, eventID, ownerID int64) error {
	return s.transition(ctx, eventID, ownerID, func(e *model.Event) Transition {
		return MarkDone(e, s.spawner)
	})
}

func (s *Service) MarkUndone(ctx context.Context, eventID, ownerID int64) error {
	return s.transition(ctx, eventID, ownerID, MarkUndone)
}

func (s *Service) transition(ctx context.Context, eventID, ownerID int64, fn func(*model.Event) Transition) error {
	if ownerID <= 0 {
		return model.ErrUnauthorized
	}

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf("event:%d", eventID))
	if err != nil {
		return fmt.Errorf("locker.Lock: %w", err)
	}
	defer unlock()

	var t Transition
	if err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		event, err := s.ownedEvent(ctx, tx, eventID, ownerID)
		if err != nil {
			return err
		}

		t = fn(event)
		if !t.Changed {
			return nil
		}

		if err := s.events.UpdateEventDone(ctx, tx, event.ID, event.Done); err != nil {
			return fmt.Errorf("eventsRepository.UpdateEventDone: %w", err)
		}

		for _, next := range t.Spawned {
			if _, err := s.events.CreateEvent(ctx, tx, next); err != nil {
				return fmt.Errorf("eventsRepository.CreateEvent: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	for _, next := range t.Spawned {
		s.logger.Debugw("spawned next occurrence",
			"event_id", eventID,
			"next_event_id", next.ID,
			"start_time", next.StartTime,
		)
	}

	return nil
}
