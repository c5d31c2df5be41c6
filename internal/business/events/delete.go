package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
)

func (s *Service) DeleteEvent(ctx context.Context, eventID, ownerID int64) error {
	return database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := s.ownedEvent(ctx, tx, eventID, ownerID); err != nil {
			return err
		}

		if err := s.events.DeleteEvent(ctx, tx, eventID); err != nil {
			return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
		}

		return nil
	})
}
