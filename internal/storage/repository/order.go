package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tado3/Star-Space/internal/models"
)

const orderColumns = `id, name, order_details, phone, order_date, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(&o.ID, &o.Name, &o.OrderDetails, &o.Phone,
		&o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts a new order record and returns its ID.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (name, order_details, phone, order_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		order.Name, order.OrderDetails, order.Phone, order.OrderDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadOrder returns an order by ID, or ErrNotFound.
func (s *Storage) ReadOrder(ctx context.Context, id int) (*models.Order, error) {
	const op = "storage.ReadOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// UpdateOrder updates an order by ID and returns the number of affected
// rows.
func (s *Storage) UpdateOrder(ctx context.Context, order models.Order, id int) (int64, error) {
	const op = "storage.UpdateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET name = $1, order_details = $2, phone = $3, order_date = $4,
			      updated_at = now()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		order.Name, order.OrderDetails, order.Phone, order.OrderDate, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveOrder deletes an order by ID and returns the number of deleted
// rows.
func (s *Storage) RemoveOrder(ctx context.Context, id int) (int64, error) {
	const op = "storage.RemoveOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM orders WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListOrders returns all orders, newest first.
func (s *Storage) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  ORDER BY order_date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
