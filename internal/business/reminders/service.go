package reminders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
)

type Service struct {
	db        database.PGX
	clock     clock.Clock
	reminders remindersRepository
}

type remindersRepository interface {
	GetActiveUnread(ctx context.Context, q database.Queryable, ownerID int64, now time.Time) ([]*model.ActiveReminder, error)
	CountActiveUnread(ctx context.Context, q database.Queryable, ownerID int64, now time.Time) (int64, error)
	GetReminder(ctx context.Context, q database.Queryable, id int64) (*model.ActiveReminder, error)
	MarkRead(ctx context.Context, q database.Queryable, id int64) error
}

func NewService(db database.PGX, clk clock.Clock, repo remindersRepository) *Service {
	return &Service{
		db:        db,
		clock:     clk,
		reminders: repo,
	}
}

// ListActive returns the owner's due and unread reminders, earliest first.
// It is recomputed on every call.
func (s *Service) ListActive(ctx context.Context, ownerID int64) ([]*model.ActiveReminder, error) {
	if ownerID <= 0 {
		return nil, model.ErrUnauthorized
	}

	now := s.clock.Now()

	reminders, err := s.reminders.GetActiveUnread(ctx, s.db, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("remindersRepository.GetActiveUnread: %w", err)
	}

	return activeUnread(reminders, ownerID, now), nil
}

func (s *Service) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	if ownerID <= 0 {
		return 0, model.ErrUnauthorized
	}

	count, err := s.reminders.CountActiveUnread(ctx, s.db, ownerID, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("remindersRepository.CountActiveUnread: %w", err)
	}

	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, reminderID, ownerID int64) error {
	if ownerID <= 0 {
		return model.ErrUnauthorized
	}

	reminder, err := s.reminders.GetReminder(ctx, s.db, reminderID)
	if err != nil {
		return fmt.Errorf("remindersRepository.GetReminder: %w", err)
	}

	if reminder.OwnerID != ownerID {
		return model.ErrForbidden
	}

	if reminder.Read {
		return nil
	}

	if err := s.reminders.MarkRead(ctx, s.db, reminderID); err != nil {
		return fmt.Errorf("remindersRepository.MarkRead: %w", err)
	}

	return nil
}

// activeUnread keeps the reminders of ownerID that are due at now and unread,
// ordered by remind time with ties left in input order.
func activeUnread(reminders []*model.ActiveReminder, ownerID int64, now time.Time) []*model.ActiveReminder {
	res := make([]*model.ActiveReminder, 0, len(reminders))
	for _, r := range reminders {
		if r.OwnerID != ownerID || r.Read || r.RemindAt.After(now) {
			continue
		}
		res = append(res, r)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].RemindAt.Before(res[j].RemindAt)
	})

	return res
}
