package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"indicab/internal/db"
)

// staleAfter is how long an unpaid pending booking may hold its slot before
// the sweep cancels it.
const staleAfter = 24 * time.Hour

// JobStore is the persistence surface the scheduled sweeps need.
type JobStore interface {
	GetConfirmedBookingIDsPastEndTime(ctx context.Context) ([]string, error)
	GetStalePendingBookingIDs(ctx context.Context, before time.Time) ([]string, error)
	UpdateBookingStatuses(ctx context.Context, ids []string, newStatus string) (int64, error)
}

type JobService struct {
	store JobStore
}

func NewJobService(store JobStore) *JobService {
	return &JobService{store: store}
}

// CompleteFinishedBookings marks confirmed rides whose window has passed as
// completed.
func (s *JobService) CompleteFinishedBookings(ctx context.Context) error {
	ids, err := s.store.GetConfirmedBookingIDsPastEndTime(ctx)
	if err != nil {
		return fmt.Errorf("sweep: failed to find finished bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.store.UpdateBookingStatuses(ctx, ids, db.BookingStatusCompleted)
	if err != nil {
		return fmt.Errorf("sweep: failed to complete bookings: %w", err)
	}
	log.Printf("Sweep: marked %d bookings completed", updated)
	return nil
}

// CancelStalePendingBookings cancels pending bookings whose payment never
// completed within the hold window, releasing the calendar. Bookings are
// never deleted, only transitioned.
func (s *JobService) CancelStalePendingBookings(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleAfter)
	ids, err := s.store.GetStalePendingBookingIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("sweep: failed to find stale pending bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.store.UpdateBookingStatuses(ctx, ids, db.BookingStatusCancelled)
	if err != nil {
		return fmt.Errorf("sweep: failed to cancel stale bookings: %w", err)
	}
	log.Printf("Sweep: cancelled %d stale pending bookings", updated)
	return nil
}
