package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tado3/Star-Space/internal/models"
	subscriber "github.com/Tado3/Star-Space/internal/services/subscriber"
)

const recentInstallationsLimit = 5

type StatsRepository interface {
	CountInstallations(ctx context.Context) (models.InstallationCounts, error)
	ListRecentInstallations(ctx context.Context, limit int) ([]*models.Installation, error)
	CountSubscribers(ctx context.Context, today time.Time, window int) (models.SubscriberCounts, error)
	CountKitTypes(ctx context.Context) (models.KitTypeCounts, error)
}

// StatsService assembles the dashboard snapshot across installations
// and subscribers.
type StatsService struct {
	repo StatsRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewStatsService(repo StatsRepository, log *slog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *StatsService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Dashboard returns the aggregate snapshot for the landing page.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	installations, err := s.repo.CountInstallations(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListRecentInstallations(ctx, recentInstallationsLimit)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountSubscribers(ctx, s.today(), subscriber.DueSoonWindowDays)
	if err != nil {
		return nil, err
	}

	kitTypes, err := s.repo.CountKitTypes(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Installations:       installations,
		RecentInstallations: recent,
		TotalActive:         counts.Active,
		DueSoon:             counts.DueSoon,
		Overdue:             counts.Overdue,
		Deactivated:         counts.Deactivated,
		KitTypes:            kitTypes,
	}, nil
}
