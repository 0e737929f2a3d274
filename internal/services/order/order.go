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

var ErrNotFound = errors.New("order not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (int, error)
	ReadOrder(ctx context.Context, id int) (*models.Order, error)
	UpdateOrder(ctx context.Context, order models.Order, id int) (int64, error)
	RemoveOrder(ctx context.Context, id int) (int64, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

// OrderService manages the ad-hoc order log.
type OrderService struct {
	repo OrderRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewOrderService(repo OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func orderFromRequest(req models.DummyOrder, today time.Time) (models.Order, error) {
	orderDate := today
	if req.OrderDate != "" {
		var err error
		orderDate, err = time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return models.Order{}, fmt.Errorf("invalid order date: %w", err)
		}
	}

	return models.Order{
		Name:         req.Name,
		OrderDetails: req.OrderDetails,
		Phone:        req.Phone,
		OrderDate:    orderDate,
	}, nil
}

func (s *OrderService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Create logs a new order. An omitted order date means today.
func (s *OrderService) Create(ctx context.Context, req models.DummyOrder) (int, error) {
	order, err := orderFromRequest(req, s.today())
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new order", slog.Int("id", id))
	return id, nil
}

// Read returns an order by ID.
func (s *OrderService) Read(ctx context.Context, id int) (*models.Order, error) {
	result, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return result, nil
}

// Update replaces an order's fields.
func (s *OrderService) Update(ctx context.Context, req models.DummyOrder, id int) error {
	order, err := orderFromRequest(req, s.today())
	if err != nil {
		return err
	}

	rowsAffected, err := s.repo.UpdateOrder(ctx, order, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info("updated order", slog.Int("id", id))
	return nil
}

// Remove deletes an order permanently.
func (s *OrderService) Remove(ctx context.Context, id int) error {
	rowsAffected, err := s.repo.RemoveOrder(ctx, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info("removed order", slog.Int("id", id))
	return nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]*models.Order, error) {
	return s.repo.ListOrders(ctx)
}
