// Package scheduler finds subscribers whose payment falls due within
// the notification window and publishes one due notice per subscriber
// to the notification queue.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tado3/Star-Space/internal/models"
)

type SchedulerRepository interface {
	FindDueForNotification(ctx context.Context, today time.Time, window int) ([]*models.Subscriber, error)
}

// Publisher sends a single due notice towards the sender.
type Publisher interface {
	PublishDueNotice(notice models.DueNotice) error
}

// SchedulerService runs the periodic sweep. Each sweep is independent
// and a publish failure for one subscriber never blocks the others.
type SchedulerService struct {
	repo       SchedulerRepository
	publisher  Publisher
	log        *slog.Logger
	windowDays int
	interval   time.Duration
	now        func() time.Time
}

func NewSchedulerService(repo SchedulerRepository, publisher Publisher, log *slog.Logger, windowDays int, interval time.Duration) *SchedulerService {
	return &SchedulerService{
		repo:       repo,
		publisher:  publisher,
		log:        log,
		windowDays: windowDays,
		interval:   interval,
		now:        time.Now,
	}
}

func (s *SchedulerService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Sweep publishes a due notice for every subscriber whose next payment
// falls inside the window, today included. Returns how many notices
// were published.
func (s *SchedulerService) Sweep(ctx context.Context) (int, error) {
	today := s.today()
	subs, err := s.repo.FindDueForNotification(ctx, today, s.windowDays)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, sub := range subs {
		daysLeft, ok := sub.DaysUntilDue(today)
		if !ok || daysLeft < 0 {
			continue
		}
		notice := models.DueNotice{
			Email:                sub.Email,
			Name:                 sub.Name,
			KitType:              sub.KitType,
			LastSubscriptionDate: sub.LastSubscriptionDate,
			NextSubscriptionDate: sub.NextSubscriptionDate,
			DaysLeft:             daysLeft,
		}
		if err := s.publisher.PublishDueNotice(notice); err != nil {
			s.log.Error("failed to publish due notice",
				slog.Int("id", sub.ID), slog.Any("err", err))
			continue
		}
		published++
	}

	s.log.Info("due notification sweep finished",
		slog.Int("candidates", len(subs)), slog.Int("published", published))
	return published, nil
}

// Run sweeps once immediately and then on every interval tick until
// ctx is cancelled.
func (s *SchedulerService) Run(ctx context.Context) error {
	if _, err := s.Sweep(ctx); err != nil {
		s.log.Error("due notification sweep failed", slog.Any("err", err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error("due notification sweep failed", slog.Any("err", err))
			}
		}
	}
}
