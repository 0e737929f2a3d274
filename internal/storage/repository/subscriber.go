package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Tado3/Star-Space/internal/models"
)

const subscriberColumns = `id, name, contact, email, kit_type,
			      last_subscription_date, next_subscription_date,
			      is_active, auto_notify, is_deactivated, deactivated_at,
			      deactivation_reason, created_at, updated_at`

func scanSubscriber(row interface{ Scan(dest ...any) error }) (*models.Subscriber, error) {
	var s models.Subscriber
	var deactivatedAt sql.NullTime
	var reason sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.KitType,
		&s.LastSubscriptionDate, &s.NextSubscriptionDate,
		&s.IsActive, &s.AutoNotify, &s.IsDeactivated, &deactivatedAt,
		&reason, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if deactivatedAt.Valid {
		s.DeactivatedAt = &deactivatedAt.Time
	}
	if reason.Valid {
		s.DeactivationReason = reason.String
	}
	return &s, nil
}

func collectSubscribers(rows *sql.Rows) ([]*models.Subscriber, error) {
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// CreateSubscriber inserts a new subscriber record and returns its ID.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber) (int, error) {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscribers (name, contact, email, kit_type,
			      last_subscription_date, next_subscription_date,
			      is_active, auto_notify)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Contact, sub.Email, sub.KitType,
		sub.LastSubscriptionDate, sub.NextSubscriptionDate,
		sub.IsActive, sub.AutoNotify).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubscriber returns a subscriber by ID, or ErrNotFound.
func (s *Storage) ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error) {
	const op = "storage.ReadSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`
	sub, err := scanSubscriber(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpdateSubscriber updates the form-editable fields of a subscriber and
// returns the number of affected rows.
func (s *Storage) UpdateSubscriber(ctx context.Context, sub models.Subscriber, id int) (int64, error) {
	const op = "storage.UpdateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET name = $1, contact = $2, email = $3, kit_type = $4,
			      last_subscription_date = $5, next_subscription_date = $6,
			      is_active = $7, auto_notify = $8, updated_at = now()
			  WHERE id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Name, sub.Contact, sub.Email, sub.KitType,
		sub.LastSubscriptionDate, sub.NextSubscriptionDate,
		sub.IsActive, sub.AutoNotify, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListSubscribers returns all subscribers, deactivated last, then
// soonest due first.
func (s *Storage) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  ORDER BY is_deactivated, next_subscription_date`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectSubscribers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscribersByIDs returns the subscribers whose ids are in the given
// set; ids that do not resolve are simply absent from the result. With
// excludeDeactivated set, deactivated records are filtered out as well.
func (s *Storage) ListSubscribersByIDs(ctx context.Context, ids []int, excludeDeactivated bool) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribersByIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  WHERE id = ANY($1)`
	if excludeDeactivated {
		query += ` AND is_deactivated = FALSE`
	}
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectSubscribers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListDueSoon returns non-deactivated subscribers whose next payment
// falls between today and today+window days, soonest first.
func (s *Storage) ListDueSoon(ctx context.Context, today time.Time, window int) ([]*models.Subscriber, error) {
	const op = "storage.ListDueSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  WHERE is_deactivated = FALSE
			    AND next_subscription_date >= $1
			    AND next_subscription_date <= $2
			  ORDER BY next_subscription_date`
	rows, err := s.DB.QueryContext(ctx, query, today, today.AddDate(0, 0, window))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectSubscribers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOverdue returns non-deactivated subscribers whose next payment
// date has passed, longest overdue first.
func (s *Storage) ListOverdue(ctx context.Context, today time.Time) ([]*models.Subscriber, error) {
	const op = "storage.ListOverdue"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  WHERE is_deactivated = FALSE
			    AND next_subscription_date < $1
			  ORDER BY next_subscription_date`
	rows, err := s.DB.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectSubscribers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindDueForNotification returns the subscribers the due-reminder job
// should notify: active, auto-notify enabled, not deactivated, next
// payment within the window and not already past.
func (s *Storage) FindDueForNotification(ctx context.Context, today time.Time, window int) ([]*models.Subscriber, error) {
	const op = "storage.FindDueForNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  WHERE is_active = TRUE
			    AND auto_notify = TRUE
			    AND is_deactivated = FALSE
			    AND next_subscription_date >= $1
			    AND next_subscription_date <= $2
			  ORDER BY next_subscription_date`
	rows, err := s.DB.QueryContext(ctx, query, today, today.AddDate(0, 0, window))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectSubscribers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscriptionDates records a payment: the last payment date and
// the newly computed next due date. Returns the number of affected rows.
func (s *Storage) UpdateSubscriptionDates(ctx context.Context, id int, last, next time.Time) (int64, error) {
	const op = "storage.UpdateSubscriptionDates"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET last_subscription_date = $1, next_subscription_date = $2,
			      updated_at = now()
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, last, next, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SetDeactivated marks a subscriber deactivated with the given timestamp
// and reason. Re-deactivating overwrites both.
func (s *Storage) SetDeactivated(ctx context.Context, id int, at time.Time, reason string) (int64, error) {
	const op = "storage.SetDeactivated"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET is_deactivated = TRUE, deactivated_at = $1,
			      deactivation_reason = $2, updated_at = now()
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, at, reason, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SetReactivated clears the deactivation state of a subscriber.
func (s *Storage) SetReactivated(ctx context.Context, id int) (int64, error) {
	const op = "storage.SetReactivated"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET is_deactivated = FALSE, deactivated_at = NULL,
			      deactivation_reason = '', updated_at = now()
			  WHERE id = $1`
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

// CountSubscribers computes the status counters for the list view and
// dashboard in a single pass.
func (s *Storage) CountSubscribers(ctx context.Context, today time.Time, window int) (models.SubscriberCounts, error) {
	const op = "storage.CountSubscribers"
	select {
	case <-ctx.Done():
		return models.SubscriberCounts{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE is_deactivated = FALSE
			          AND next_subscription_date >= $1),
			      COUNT(*) FILTER (WHERE is_deactivated = FALSE
			          AND next_subscription_date >= $1
			          AND next_subscription_date <= $2),
			      COUNT(*) FILTER (WHERE is_deactivated = FALSE
			          AND next_subscription_date < $1),
			      COUNT(*) FILTER (WHERE is_deactivated = TRUE)
			  FROM subscribers`
	var counts models.SubscriberCounts
	err := s.DB.QueryRowContext(ctx, query, today, today.AddDate(0, 0, window)).Scan(
		&counts.Total, &counts.Active, &counts.DueSoon, &counts.Overdue, &counts.Deactivated)
	if err != nil {
		return models.SubscriberCounts{}, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}

// CountKitTypes breaks the non-deactivated subscribers down by kit type.
func (s *Storage) CountKitTypes(ctx context.Context) (models.KitTypeCounts, error) {
	const op = "storage.CountKitTypes"
	select {
	case <-ctx.Done():
		return models.KitTypeCounts{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*) FILTER (WHERE kit_type = $1),
			      COUNT(*) FILTER (WHERE kit_type = $2)
			  FROM subscribers
			  WHERE is_deactivated = FALSE`
	var counts models.KitTypeCounts
	err := s.DB.QueryRowContext(ctx, query, models.KitStandard, models.KitMini).Scan(
		&counts.Standard, &counts.Mini)
	if err != nil {
		return models.KitTypeCounts{}, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
