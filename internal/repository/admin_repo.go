package repository

import (
	"context"
	"database/sql"
	"fmt"

	"indicab/internal/db"
	"indicab/internal/entities"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

// GetBookingsReport aggregates the dashboard numbers in one round trip per
// concern.
func (r *AdminRepository) GetBookingsReport(ctx context.Context) (*entities.BookingsReport, error) {
	report := &entities.BookingsReport{BookingsByStatus: map[string]int64{}}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting bookings by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		report.BookingsByStatus[status] = count
		report.TotalBookings += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating status counts: %w", err)
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM bookings
		WHERE payment_status = $1`, db.PaymentStatusCompleted,
	).Scan(&report.CompletedRevenue)
	if err != nil {
		return nil, fmt.Errorf("error summing completed revenue: %w", err)
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE available) FROM vehicles`,
	).Scan(&report.TotalVehicles, &report.AvailableVehicles)
	if err != nil {
		return nil, fmt.Errorf("error counting vehicles: %w", err)
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM drivers WHERE active`,
	).Scan(&report.ActiveDrivers)
	if err != nil {
		return nil, fmt.Errorf("error counting drivers: %w", err)
	}

	return report, nil
}
