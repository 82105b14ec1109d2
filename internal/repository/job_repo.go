package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"indicab/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedBookingIDsPastEndTime finds confirmed rides whose window has
// already closed.
func (r *JobRepository) GetConfirmedBookingIDsPastEndTime(ctx context.Context) ([]string, error) {
	return r.queryIDs(ctx,
		`SELECT id FROM bookings WHERE status = $1 AND end_time < NOW()`,
		db.BookingStatusConfirmed)
}

// GetStalePendingBookingIDs finds pending bookings created before the cutoff
// whose payment never completed.
func (r *JobRepository) GetStalePendingBookingIDs(ctx context.Context, before time.Time) ([]string, error) {
	return r.queryIDs(ctx, `
		SELECT id FROM bookings
		WHERE status = $1 AND payment_status = $2 AND created_at < $3`,
		db.BookingStatusPending, db.PaymentStatusPending, before)
}

// UpdateBookingStatuses bulk-transitions the given bookings.
func (r *JobRepository) UpdateBookingStatuses(ctx context.Context, ids []string, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating booking statuses: %w", err)
	}
	return result.RowsAffected()
}

func (r *JobRepository) queryIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying booking ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
