package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tado3/Star-Space/internal/models"
	"github.com/Tado3/Star-Space/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscriber(ctx context.Context, sub models.Subscriber) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}
func (m *RepoMock) UpdateSubscriber(ctx context.Context, sub models.Subscriber, id int) (int64, error) {
	args := m.Called(ctx, sub, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) ListSubscribersByIDs(ctx context.Context, ids []int, excludeDeactivated bool) ([]*models.Subscriber, error) {
	args := m.Called(ctx, ids, excludeDeactivated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) ListDueSoon(ctx context.Context, today time.Time, window int) ([]*models.Subscriber, error) {
	args := m.Called(ctx, today, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) ListOverdue(ctx context.Context, today time.Time) ([]*models.Subscriber, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) UpdateSubscriptionDates(ctx context.Context, id int, last, next time.Time) (int64, error) {
	args := m.Called(ctx, id, last, next)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) SetDeactivated(ctx context.Context, id int, at time.Time, reason string) (int64, error) {
	args := m.Called(ctx, id, at, reason)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) SetReactivated(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) CountSubscribers(ctx context.Context, today time.Time, window int) (models.SubscriberCounts, error) {
	args := m.Called(ctx, today, window)
	return args.Get(0).(models.SubscriberCounts), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *RepoMock, cache *CacheMock, now time.Time) *SubscriberService {
	svc := NewSubscriberService(repo, cache, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubscriberService_Create(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        models.DummySubscriber
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "success create",
			req: models.DummySubscriber{
				Name:                 "Jean Bosco",
				Contact:              "078-776-8637",
				Email:                "jean@example.com",
				KitType:              "STANDARD",
				LastSubscriptionDate: "2024-05-01",
				NextSubscriptionDate: "2024-06-01",
			},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateSubscriber", mock.Anything, mock.MatchedBy(func(s models.Subscriber) bool {
					return s.Name == "Jean Bosco" &&
						s.KitType == models.KitStandard &&
						s.IsActive && s.AutoNotify
				})).Return(42, nil).Once()
				c.On("Set", "subscriber:42", mock.Anything, time.Hour).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name: "next date not after last date",
			req: models.DummySubscriber{
				Name:                 "Jean Bosco",
				Contact:              "078-776-8637",
				Email:                "jean@example.com",
				KitType:              "MINI",
				LastSubscriptionDate: "2024-06-01",
				NextSubscriptionDate: "2024-06-01",
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidDates,
		},
		{
			name: "invalid date string",
			req: models.DummySubscriber{
				Name:                 "Jean Bosco",
				Contact:              "078-776-8637",
				Email:                "jean@example.com",
				KitType:              "MINI",
				LastSubscriptionDate: "not-a-date",
				NextSubscriptionDate: "2024-06-01",
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    errors.New("invalid last subscription date"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := newTestService(repo, cache, now)

			id, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidDates) {
					assert.ErrorIs(t, err, ErrInvalidDates)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestSubscriberService_Read(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing id maps to ErrNotFound", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "subscriber:77", mock.Anything).Return(false, nil).Once()
		repo.On("ReadSubscriber", mock.Anything, 77).
			Return(nil, fmt.Errorf("storage.ReadSubscriber: %w", repository.ErrNotFound)).Once()
		svc := newTestService(repo, cache, now)

		sub, err := svc.Read(context.Background(), 77)

		assert.Nil(t, sub)
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("repository hit is cached", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		want := &models.Subscriber{ID: 7, Name: "Jean Bosco", KitType: models.KitStandard}
		cache.On("Get", "subscriber:7", mock.Anything).Return(false, nil).Once()
		repo.On("ReadSubscriber", mock.Anything, 7).Return(want, nil).Once()
		cache.On("Set", "subscriber:7", want, time.Hour).Return(nil).Once()
		svc := newTestService(repo, cache, now)

		sub, err := svc.Read(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, want, sub)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestSubscriberService_MarkPaid(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	paymentDate := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("explicit date and two periods", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		wantNext := paymentDate.AddDate(0, 0, 60)
		repo.On("UpdateSubscriptionDates", mock.Anything, 7, paymentDate, wantNext).
			Return(int64(1), nil).Once()
		cache.On("Invalidate", "subscriber:7").Return(nil).Once()
		svc := newTestService(repo, cache, now)

		next, err := svc.MarkPaid(context.Background(), 7, models.DummyPayment{
			PaymentDate: "2024-06-05",
			Months:      2,
		})

		require.NoError(t, err)
		assert.Equal(t, wantNext, next)
		repo.AssertExpectations(t)
	})

	t.Run("defaults to today and one period", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		repo.On("UpdateSubscriptionDates", mock.Anything, 7, today, today.AddDate(0, 0, 30)).
			Return(int64(1), nil).Once()
		cache.On("Invalidate", "subscriber:7").Return(nil).Once()
		svc := newTestService(repo, cache, now)

		_, err := svc.MarkPaid(context.Background(), 7, models.DummyPayment{})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repeated identical payments compute the same dates", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		wantNext := paymentDate.AddDate(0, 0, 30)
		repo.On("UpdateSubscriptionDates", mock.Anything, 7, paymentDate, wantNext).
			Return(int64(1), nil).Twice()
		cache.On("Invalidate", "subscriber:7").Return(nil).Twice()
		svc := newTestService(repo, cache, now)

		req := models.DummyPayment{PaymentDate: "2024-06-05", Months: 1}
		first, err := svc.MarkPaid(context.Background(), 7, req)
		require.NoError(t, err)
		second, err := svc.MarkPaid(context.Background(), 7, req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateSubscriptionDates", mock.Anything, 404, mock.Anything, mock.Anything).
			Return(int64(0), nil).Once()
		svc := newTestService(repo, cache, now)

		_, err := svc.MarkPaid(context.Background(), 404, models.DummyPayment{})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSubscriberService_BulkMarkPaid(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// ids 1,2,3 requested: id 2 is deactivated (filtered out by the
	// repository), id 4 does not exist, so only 1 and 3 resolve.
	resolved := []*models.Subscriber{
		{ID: 1, Name: "A"},
		{ID: 3, Name: "C"},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListSubscribersByIDs", mock.Anything, []int{1, 2, 3, 4}, true).
		Return(resolved, nil).Once()
	repo.On("UpdateSubscriptionDates", mock.Anything, 1, today, today.AddDate(0, 0, 30)).
		Return(int64(1), nil).Once()
	repo.On("UpdateSubscriptionDates", mock.Anything, 3, today, today.AddDate(0, 0, 30)).
		Return(int64(1), nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil)
	svc := newTestService(repo, cache, now)

	result, err := svc.BulkMarkPaid(context.Background(), models.DummyBulkPayment{IDs: []int{1, 2, 3, 4}})

	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestSubscriberService_BulkMarkPaid_PartialFailure(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	resolved := []*models.Subscriber{
		{ID: 1}, {ID: 2}, {ID: 3},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListSubscribersByIDs", mock.Anything, []int{1, 2, 3}, true).
		Return(resolved, nil).Once()
	repo.On("UpdateSubscriptionDates", mock.Anything, 1, today, mock.Anything).
		Return(int64(1), nil).Once()
	repo.On("UpdateSubscriptionDates", mock.Anything, 2, today, mock.Anything).
		Return(int64(0), errors.New("db error")).Once()
	repo.On("UpdateSubscriptionDates", mock.Anything, 3, today, mock.Anything).
		Return(int64(1), nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil)
	svc := newTestService(repo, cache, now)

	result, err := svc.BulkMarkPaid(context.Background(), models.DummyBulkPayment{IDs: []int{1, 2, 3}})

	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Len(t, result.Errors, 1)
	repo.AssertExpectations(t)
}

func TestSubscriberService_DeactivateReactivate(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("SetDeactivated", mock.Anything, 5, now, "non-payment").
		Return(int64(1), nil).Once()
	repo.On("SetReactivated", mock.Anything, 5).
		Return(int64(1), nil).Once()
	cache.On("Invalidate", "subscriber:5").Return(nil).Twice()
	svc := newTestService(repo, cache, now)

	require.NoError(t, svc.Deactivate(context.Background(), 5, "non-payment"))
	require.NoError(t, svc.Reactivate(context.Background(), 5))
	repo.AssertExpectations(t)
}

func TestSubscriberService_Deactivate_NotFound(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("SetDeactivated", mock.Anything, 404, now, "").
		Return(int64(0), nil).Once()
	svc := newTestService(repo, cache, now)

	err := svc.Deactivate(context.Background(), 404, "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriberService_BulkDeactivate_DefaultReason(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	resolved := []*models.Subscriber{{ID: 1}, {ID: 2}}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListSubscribersByIDs", mock.Anything, []int{1, 2, 99}, false).
		Return(resolved, nil).Once()
	repo.On("SetDeactivated", mock.Anything, 1, now, BulkDeactivationReason).
		Return(int64(1), nil).Once()
	repo.On("SetDeactivated", mock.Anything, 2, now, BulkDeactivationReason).
		Return(int64(1), nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil)
	svc := newTestService(repo, cache, now)

	result, err := svc.BulkDeactivate(context.Background(), models.DummyBulkDeactivate{IDs: []int{1, 2, 99}})

	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	repo.AssertExpectations(t)
}

func TestSubscriberService_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	subs := []*models.Subscriber{
		{ID: 1, KitType: models.KitStandard, NextSubscriptionDate: today.AddDate(0, 0, -14)}, // mild
		{ID: 2, KitType: models.KitMini, NextSubscriptionDate: today.AddDate(0, 0, -15)},     // moderate
		{ID: 3, KitType: models.KitStandard, NextSubscriptionDate: today.AddDate(0, 0, -30)}, // severe
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListOverdue", mock.Anything, today).Return(subs, nil).Once()
	svc := newTestService(repo, cache, now)

	report, err := svc.Overdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SeverityCounts{Mild: 1, Moderate: 1, Severe: 1}, report.Severity)
	assert.Equal(t, models.KitTypeCounts{Standard: 2, Mini: 1}, report.KitTypes)
	assert.Equal(t, 300, report.EstimatedRevenue)
	repo.AssertExpectations(t)
}
