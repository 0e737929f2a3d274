package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tado3/Star-Space/internal/models"
	"github.com/Tado3/Star-Space/internal/storage/repository"
)

var (
	ErrNotFound    = errors.New("installation not found")
	ErrUnknownType = errors.New("unknown installation type")
)

type InstallationRepository interface {
	CreateInstallation(ctx context.Context, inst models.Installation) (int, error)
	ReadInstallation(ctx context.Context, id int) (*models.Installation, error)
	UpdateInstallation(ctx context.Context, inst models.Installation, id int) (int64, error)
	ListInstallations(ctx context.Context) ([]*models.Installation, error)
	ListInstallationsByType(ctx context.Context, installationType models.InstallationType) ([]*models.Installation, error)
	CountInstallations(ctx context.Context) (models.InstallationCounts, error)
}

type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// InstallationService manages the history of completed installation
// jobs.
type InstallationService struct {
	repo  InstallationRepository
	cache Cache
	log   *slog.Logger
}

func NewInstallationService(repo InstallationRepository, cache Cache, log *slog.Logger) *InstallationService {
	return &InstallationService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("installation:%d", id)
}

func installationFromRequest(req models.DummyInstallation) (models.Installation, error) {
	date, err := time.Parse("2006-01-02", req.InstallationDate)
	if err != nil {
		return models.Installation{}, fmt.Errorf("invalid installation date: %w", err)
	}

	installationType := models.InstallationType(req.InstallationType)
	if req.InstallationType == "" {
		installationType = models.InstallationStarlink
	}

	return models.Installation{
		Name:             req.Name,
		Contact:          req.Contact,
		Email:            req.Email,
		InstallationType: installationType,
		InstallationDate: date,
		Invoice:          req.Invoice,
		Notes:            req.Notes,
	}, nil
}

// Create records a completed installation and returns its ID.
func (s *InstallationService) Create(ctx context.Context, req models.DummyInstallation) (int, error) {
	inst, err := installationFromRequest(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateInstallation(ctx, inst)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new installation", slog.Int("id", id))

	inst.ID = id
	if err := s.cache.Set(cacheKey(id), inst, time.Hour); err != nil {
		s.log.Warn("failed to cache installation", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}

	return id, nil
}

// Read returns an installation by ID, using the cache when possible.
func (s *InstallationService) Read(ctx context.Context, id int) (*models.Installation, error) {
	var cached models.Installation
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.ReadInstallation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), result, time.Hour); err != nil {
		s.log.Warn("failed to cache installation", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return result, nil
}

// Update replaces the editable fields of an installation record.
func (s *InstallationService) Update(ctx context.Context, req models.DummyInstallation, id int) error {
	inst, err := installationFromRequest(req)
	if err != nil {
		return err
	}

	rowsAffected, err := s.repo.UpdateInstallation(ctx, inst, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	inst.ID = id
	if err := s.cache.Set(cacheKey(id), inst, time.Hour); err != nil {
		s.log.Warn("failed to cache installation", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("updated installation", slog.Int("id", id))
	return nil
}

// List returns every installation, newest first, with per-type counts.
// A type filter narrows the list but the counts stay global, matching
// the list view's summary cards.
func (s *InstallationService) List(ctx context.Context, typeFilter string) ([]*models.Installation, models.InstallationCounts, error) {
	var (
		installations []*models.Installation
		err           error
	)
	if typeFilter != "" {
		installationType := models.InstallationType(typeFilter)
		if !installationType.Valid() {
			return nil, models.InstallationCounts{}, fmt.Errorf("%w: %q", ErrUnknownType, typeFilter)
		}
		installations, err = s.repo.ListInstallationsByType(ctx, installationType)
	} else {
		installations, err = s.repo.ListInstallations(ctx)
	}
	if err != nil {
		return nil, models.InstallationCounts{}, err
	}

	counts, err := s.repo.CountInstallations(ctx)
	if err != nil {
		return nil, models.InstallationCounts{}, err
	}
	return installations, counts, nil
}
