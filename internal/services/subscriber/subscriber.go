// Package services contains the business logic for managing subscribers:
// the deactivation lifecycle, payment-driven date advancement, bulk
// operations and the due/overdue reports.
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

// DueSoonWindowDays is the default window for the due-soon views.
const DueSoonWindowDays = 7

// PaymentPeriodDays is the length of one billing period. The original
// system advances due dates by fixed 30-day months rather than calendar
// months; that arithmetic is kept for compatibility.
const PaymentPeriodDays = 30

// BulkDeactivationReason is recorded when a bulk deactivation carries no
// explicit reason.
const BulkDeactivationReason = "Bulk deactivation"

// ErrNotFound is returned when an id does not resolve to a subscriber.
var ErrNotFound = errors.New("subscriber not found")

// ErrInvalidDates rejects form entries where the next subscription date
// is not strictly after the last one.
var ErrInvalidDates = errors.New("next subscription date must be after last subscription date")

// SubscriberRepository defines the storage methods the service builds on.
type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, sub models.Subscriber) (int, error)
	ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error)
	UpdateSubscriber(ctx context.Context, sub models.Subscriber, id int) (int64, error)
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
	ListSubscribersByIDs(ctx context.Context, ids []int, excludeDeactivated bool) ([]*models.Subscriber, error)
	ListDueSoon(ctx context.Context, today time.Time, window int) ([]*models.Subscriber, error)
	ListOverdue(ctx context.Context, today time.Time) ([]*models.Subscriber, error)
	UpdateSubscriptionDates(ctx context.Context, id int, last, next time.Time) (int64, error)
	SetDeactivated(ctx context.Context, id int, at time.Time, reason string) (int64, error)
	SetReactivated(ctx context.Context, id int) (int64, error)
	CountSubscribers(ctx context.Context, today time.Time, window int) (models.SubscriberCounts, error)
}

// Cache describes the caching methods used for subscriber reads.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SubscriberService implements the subscriber business logic, including
// caching of single-record reads.
type SubscriberService struct {
	repo  SubscriberRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewSubscriberService creates a new SubscriberService.
func NewSubscriberService(repo SubscriberRepository, cache Cache, log *slog.Logger) *SubscriberService {
	return &SubscriberService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func (s *SubscriberService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func cacheKey(id int) string {
	return fmt.Sprintf("subscriber:%d", id)
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func subscriberFromRequest(req models.DummySubscriber) (models.Subscriber, error) {
	lastDate, err := time.Parse("2006-01-02", req.LastSubscriptionDate)
	if err != nil {
		return models.Subscriber{}, fmt.Errorf("invalid last subscription date: %w", err)
	}
	nextDate, err := time.Parse("2006-01-02", req.NextSubscriptionDate)
	if err != nil {
		return models.Subscriber{}, fmt.Errorf("invalid next subscription date: %w", err)
	}
	if !nextDate.After(lastDate) {
		return models.Subscriber{}, ErrInvalidDates
	}

	return models.Subscriber{
		Name:                 req.Name,
		Contact:              req.Contact,
		Email:                req.Email,
		KitType:              models.KitType(req.KitType),
		LastSubscriptionDate: lastDate,
		NextSubscriptionDate: nextDate,
		IsActive:             boolOrDefault(req.IsActive, true),
		AutoNotify:           boolOrDefault(req.AutoNotify, true),
	}, nil
}

// Create adds a new subscriber from form data, caches it and returns its
// ID. The next subscription date must be strictly after the last one.
func (s *SubscriberService) Create(ctx context.Context, req models.DummySubscriber) (int, error) {
	sub, err := subscriberFromRequest(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateSubscriber(ctx, sub)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new subscriber", slog.Int("id", id))

	sub.ID = id
	if err := s.cache.Set(cacheKey(id), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscriber", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}

	return id, nil
}

// Read returns a subscriber by ID, using the cache when possible.
func (s *SubscriberService) Read(ctx context.Context, id int) (*models.Subscriber, error) {
	var result *models.Subscriber
	found, err := s.cache.Get(cacheKey(id), &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadSubscriber(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey(id), result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}
	return result, nil
}

// Update replaces the form-editable fields of a subscriber and refreshes
// the cache.
func (s *SubscriberService) Update(ctx context.Context, req models.DummySubscriber, id int) error {
	sub, err := subscriberFromRequest(req)
	if err != nil {
		return err
	}

	rowsAffected, err := s.repo.UpdateSubscriber(ctx, sub, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info("updated subscriber", slog.Int("id", id))

	sub.ID = id
	if err := s.cache.Set(cacheKey(id), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscriber", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return nil
}

// List returns all subscribers, deactivated last and soonest due first,
// together with the status counters.
func (s *SubscriberService) List(ctx context.Context) (*models.SubscriberList, error) {
	subs, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountSubscribers(ctx, s.today(), DueSoonWindowDays)
	if err != nil {
		return nil, err
	}
	return &models.SubscriberList{Subscribers: subs, Counts: counts}, nil
}

func kitCounts(subs []*models.Subscriber) models.KitTypeCounts {
	var counts models.KitTypeCounts
	for _, sub := range subs {
		switch sub.KitType {
		case models.KitStandard:
			counts.Standard++
		case models.KitMini:
			counts.Mini++
		}
	}
	return counts
}

// DueSoon returns the subscribers whose payment is due within the
// default window, with their kit-type breakdown.
func (s *SubscriberService) DueSoon(ctx context.Context) (*models.DueSoonReport, error) {
	subs, err := s.repo.ListDueSoon(ctx, s.today(), DueSoonWindowDays)
	if err != nil {
		return nil, err
	}
	return &models.DueSoonReport{
		Subscribers: subs,
		KitTypes:    kitCounts(subs),
	}, nil
}

// Overdue returns the subscribers whose payment date has passed, with
// severity and kit breakdowns and the estimated outstanding revenue.
func (s *SubscriberService) Overdue(ctx context.Context) (*models.OverdueReport, error) {
	today := s.today()
	subs, err := s.repo.ListOverdue(ctx, today)
	if err != nil {
		return nil, err
	}

	var severity models.SeverityCounts
	for _, sub := range subs {
		bucket, ok := sub.OverdueSeverity(today)
		if !ok {
			continue
		}
		switch bucket {
		case models.SeverityMild:
			severity.Mild++
		case models.SeverityModerate:
			severity.Moderate++
		case models.SeveritySevere:
			severity.Severe++
		}
	}

	return &models.OverdueReport{
		Subscribers:      subs,
		Severity:         severity,
		KitTypes:         kitCounts(subs),
		EstimatedRevenue: models.EstimatedRevenue(len(subs)),
	}, nil
}

// paymentDates resolves the payment parameters: the payment date
// defaults to today, the period to one 30-day month.
func (s *SubscriberService) paymentDates(req models.DummyPayment) (payment, next time.Time, err error) {
	payment = s.today()
	if req.PaymentDate != "" {
		payment, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid payment date: %w", err)
		}
	}
	months := req.Months
	if months == 0 {
		months = 1
	}
	if months < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("months must be a positive integer")
	}
	return payment, payment.AddDate(0, 0, PaymentPeriodDays*months), nil
}

// MarkPaid records a payment for one subscriber: the last subscription
// date becomes the payment date and the next one advances by 30 days per
// period. Deactivated subscribers are payable too. Returns the new next
// subscription date.
func (s *SubscriberService) MarkPaid(ctx context.Context, id int, req models.DummyPayment) (time.Time, error) {
	payment, next, err := s.paymentDates(req)
	if err != nil {
		return time.Time{}, err
	}

	rowsAffected, err := s.repo.UpdateSubscriptionDates(ctx, id, payment, next)
	if err != nil {
		return time.Time{}, err
	}
	if rowsAffected == 0 {
		return time.Time{}, ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("recorded payment", slog.Int("id", id), slog.Time("next_due", next))
	return next, nil
}

// BulkMarkPaid records the same payment for every resolved, currently
// non-deactivated subscriber in the id set. Missing ids are skipped
// silently; a failure on one record does not roll back the others.
func (s *SubscriberService) BulkMarkPaid(ctx context.Context, req models.DummyBulkPayment) (*models.BulkResult, error) {
	payment, next, err := s.paymentDates(models.DummyPayment{PaymentDate: req.PaymentDate, Months: req.Months})
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.ListSubscribersByIDs(ctx, req.IDs, true)
	if err != nil {
		return nil, err
	}

	result := &models.BulkResult{}
	for _, sub := range subs {
		if _, err := s.repo.UpdateSubscriptionDates(ctx, sub.ID, payment, next); err != nil {
			s.log.Error("bulk payment failed for subscriber", slog.Int("id", sub.ID), slog.Any("err", err))
			result.Errors = append(result.Errors, fmt.Sprintf("subscriber %d: %v", sub.ID, err))
			continue
		}
		if err := s.cache.Invalidate(cacheKey(sub.ID)); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(sub.ID)), slog.Any("err", err))
		}
		result.UpdatedCount++
	}
	s.log.Info("bulk payment applied", slog.Int("updated", result.UpdatedCount))
	return result, nil
}

// Deactivate suspends a subscriber. Re-deactivating simply overwrites
// the timestamp and reason.
func (s *SubscriberService) Deactivate(ctx context.Context, id int, reason string) error {
	rowsAffected, err := s.repo.SetDeactivated(ctx, id, s.now(), reason)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("deactivated subscriber", slog.Int("id", id))
	return nil
}

// Reactivate clears the deactivation state of a subscriber. Legal as a
// no-op on an already active subscriber.
func (s *SubscriberService) Reactivate(ctx context.Context, id int) error {
	rowsAffected, err := s.repo.SetReactivated(ctx, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("reactivated subscriber", slog.Int("id", id))
	return nil
}

// BulkDeactivate suspends every resolved subscriber in the id set with a
// shared reason. Missing ids are skipped silently.
func (s *SubscriberService) BulkDeactivate(ctx context.Context, req models.DummyBulkDeactivate) (*models.BulkResult, error) {
	reason := req.Reason
	if reason == "" {
		reason = BulkDeactivationReason
	}

	subs, err := s.repo.ListSubscribersByIDs(ctx, req.IDs, false)
	if err != nil {
		return nil, err
	}

	at := s.now()
	result := &models.BulkResult{}
	for _, sub := range subs {
		if _, err := s.repo.SetDeactivated(ctx, sub.ID, at, reason); err != nil {
			s.log.Error("bulk deactivation failed for subscriber", slog.Int("id", sub.ID), slog.Any("err", err))
			result.Errors = append(result.Errors, fmt.Sprintf("subscriber %d: %v", sub.ID, err))
			continue
		}
		if err := s.cache.Invalidate(cacheKey(sub.ID)); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(sub.ID)), slog.Any("err", err))
		}
		result.UpdatedCount++
	}
	s.log.Info("bulk deactivation applied", slog.Int("updated", result.UpdatedCount))
	return result, nil
}
