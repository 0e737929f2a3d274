package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tado3/Star-Space/internal/models"
)

func TestStorage_SubscriberLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory()

	id, err := storage.CreateSubscriber(ctx, factory.Subscriber("jean", 10))
	require.NoError(t, err)
	require.Positive(t, id)

	sub, err := storage.ReadSubscriber(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jean", sub.Name)
	assert.False(t, sub.IsDeactivated)

	// Record a payment: both dates move.
	payment := factory.today
	next := payment.AddDate(0, 0, 30)
	rows, err := storage.UpdateSubscriptionDates(ctx, id, payment, next)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	sub, err = storage.ReadSubscriber(ctx, id)
	require.NoError(t, err)
	assert.True(t, sub.LastSubscriptionDate.Equal(payment))
	assert.True(t, sub.NextSubscriptionDate.Equal(next))

	// Deactivate and verify the fields, then reactivate and verify the
	// state is fully cleared.
	at := time.Now().UTC().Truncate(time.Second)
	rows, err = storage.SetDeactivated(ctx, id, at, "non-payment")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	sub, err = storage.ReadSubscriber(ctx, id)
	require.NoError(t, err)
	assert.True(t, sub.IsDeactivated)
	require.NotNil(t, sub.DeactivatedAt)
	assert.Equal(t, "non-payment", sub.DeactivationReason)

	rows, err = storage.SetReactivated(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	sub, err = storage.ReadSubscriber(ctx, id)
	require.NoError(t, err)
	assert.False(t, sub.IsDeactivated)
	assert.Nil(t, sub.DeactivatedAt)
	assert.Empty(t, sub.DeactivationReason)
}

func TestStorage_ReadSubscriber_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := storage.ReadSubscriber(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ListSubscribersByIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory()

	id1, err := storage.CreateSubscriber(ctx, factory.Subscriber("one", 5))
	require.NoError(t, err)
	id2, err := storage.CreateSubscriber(ctx, factory.Subscriber("two", 5))
	require.NoError(t, err)

	_, err = storage.SetDeactivated(ctx, id2, time.Now().UTC(), "test")
	require.NoError(t, err)

	// Missing ids resolve to nothing; deactivated records are filtered
	// only when asked.
	subs, err := storage.ListSubscribersByIDs(ctx, []int{id1, id2, 99999}, true)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, id1, subs[0].ID)

	subs, err = storage.ListSubscribersByIDs(ctx, []int{id1, id2, 99999}, false)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestStorage_DueQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory()

	mustCreate := func(sub models.Subscriber) int {
		id, err := storage.CreateSubscriber(ctx, sub)
		require.NoError(t, err)
		return id
	}

	dueSoonID := mustCreate(factory.Subscriber("duesoon", 3))
	overdueID := mustCreate(factory.Subscriber("overdue", -5))
	mustCreate(factory.Subscriber("uptodate", 60))

	deactivated := factory.Subscriber("deactivated", -5)
	deactivatedID := mustCreate(deactivated)
	_, err := storage.SetDeactivated(ctx, deactivatedID, time.Now().UTC(), "test")
	require.NoError(t, err)

	dueSoon, err := storage.ListDueSoon(ctx, factory.today, 7)
	require.NoError(t, err)
	require.Len(t, dueSoon, 1)
	assert.Equal(t, dueSoonID, dueSoon[0].ID)

	overdue, err := storage.ListOverdue(ctx, factory.today)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overdueID, overdue[0].ID)

	// The notification query only picks active, auto-notify records
	// inside the window, today included.
	notify, err := storage.FindDueForNotification(ctx, factory.today, 3)
	require.NoError(t, err)
	require.Len(t, notify, 1)
	assert.Equal(t, dueSoonID, notify[0].ID)

	counts, err := storage.CountSubscribers(ctx, factory.today, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 1, counts.DueSoon)
	assert.Equal(t, 1, counts.Overdue)
	assert.Equal(t, 1, counts.Deactivated)
}

func TestStorage_ListSubscribers_DeactivatedLast(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory()

	deactID, err := storage.CreateSubscriber(ctx, factory.Subscriber("aaa", 1))
	require.NoError(t, err)
	_, err = storage.SetDeactivated(ctx, deactID, time.Now().UTC(), "test")
	require.NoError(t, err)

	activeID, err := storage.CreateSubscriber(ctx, factory.Subscriber("zzz", 50))
	require.NoError(t, err)

	subs, err := storage.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, activeID, subs[0].ID)
	assert.Equal(t, deactID, subs[1].ID)
}
