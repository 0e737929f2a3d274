package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tado3/Star-Space/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadOrder(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *RepoMock) UpdateOrder(ctx context.Context, order models.Order, id int) (int64, error) {
	args := m.Called(ctx, order, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) RemoveOrder(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListOrders(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestOrderService_Create_DefaultsDateToToday(t *testing.T) {
	now := time.Date(2024, 7, 4, 18, 45, 0, 0, time.UTC)
	today := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.OrderDate.Equal(today) && o.Name == "Eric"
	})).Return(3, nil).Once()
	svc := NewOrderService(repo, newNoopLogger())
	svc.now = func() time.Time { return now }

	id, err := svc.Create(context.Background(), models.DummyOrder{
		Name:         "Eric",
		OrderDetails: "2x MINI kit",
		Phone:        "078-776-8637",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, id)
	repo.AssertExpectations(t)
}

func TestOrderService_Create_ExplicitDate(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.OrderDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(4, nil).Once()
	svc := NewOrderService(repo, newNoopLogger())

	_, err := svc.Create(context.Background(), models.DummyOrder{
		Name:         "Eric",
		OrderDetails: "Router",
		Phone:        "078-776-8637",
		OrderDate:    "2024-06-01",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_Remove(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "success remove", rowsAffected: 1},
		{name: "unknown id", rowsAffected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("RemoveOrder", mock.Anything, 9).Return(tt.rowsAffected, nil).Once()
			svc := NewOrderService(repo, newNoopLogger())

			err := svc.Remove(context.Background(), 9)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
