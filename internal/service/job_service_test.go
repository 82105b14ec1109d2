package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicab/internal/db"
	"indicab/internal/service"
)

type mockJobStore struct {
	finishedIDs func(ctx context.Context) ([]string, error)
	staleIDs    func(ctx context.Context, before time.Time) ([]string, error)
	update      func(ctx context.Context, ids []string, newStatus string) (int64, error)
}

func (m *mockJobStore) GetConfirmedBookingIDsPastEndTime(ctx context.Context) ([]string, error) {
	return m.finishedIDs(ctx)
}
func (m *mockJobStore) GetStalePendingBookingIDs(ctx context.Context, before time.Time) ([]string, error) {
	return m.staleIDs(ctx, before)
}
func (m *mockJobStore) UpdateBookingStatuses(ctx context.Context, ids []string, newStatus string) (int64, error) {
	return m.update(ctx, ids, newStatus)
}

var _ service.JobStore = (*mockJobStore)(nil)

func TestCompleteFinishedBookings(t *testing.T) {
	var gotIDs []string
	var gotStatus string
	store := &mockJobStore{
		finishedIDs: func(_ context.Context) ([]string, error) {
			return []string{"B1", "B2"}, nil
		},
		update: func(_ context.Context, ids []string, status string) (int64, error) {
			gotIDs, gotStatus = ids, status
			return int64(len(ids)), nil
		},
	}
	svc := service.NewJobService(store)

	err := svc.CompleteFinishedBookings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B2"}, gotIDs)
	assert.Equal(t, db.BookingStatusCompleted, gotStatus)
}

func TestCompleteFinishedBookings_NothingToDo(t *testing.T) {
	store := &mockJobStore{
		finishedIDs: func(_ context.Context) ([]string, error) { return nil, nil },
		update: func(_ context.Context, _ []string, _ string) (int64, error) {
			t.Fatal("no update expected when no bookings matched")
			return 0, nil
		},
	}
	svc := service.NewJobService(store)

	assert.NoError(t, svc.CompleteFinishedBookings(context.Background()))
}

func TestCancelStalePendingBookings(t *testing.T) {
	var gotStatus string
	var gotCutoff time.Time
	store := &mockJobStore{
		staleIDs: func(_ context.Context, before time.Time) ([]string, error) {
			gotCutoff = before
			return []string{"B3"}, nil
		},
		update: func(_ context.Context, ids []string, status string) (int64, error) {
			gotStatus = status
			return 1, nil
		},
	}
	svc := service.NewJobService(store)

	err := svc.CancelStalePendingBookings(context.Background())

	require.NoError(t, err)
	// Stale bookings are cancelled, never deleted.
	assert.Equal(t, db.BookingStatusCancelled, gotStatus)
	assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), gotCutoff, time.Minute)
}

func TestCancelStalePendingBookings_QueryError(t *testing.T) {
	store := &mockJobStore{
		staleIDs: func(_ context.Context, _ time.Time) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	svc := service.NewJobService(store)

	assert.Error(t, svc.CancelStalePendingBookings(context.Background()))
}
