package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"indicab/internal/apperrors"
	"indicab/internal/db"
	"indicab/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// stripe columns are empty until a checkout session is attached.
const bookingColumns = `id, code, vehicle_id, customer_name, customer_email, customer_phone,
		passengers, pickup_location, drop_location, start_time, end_time,
		total_amount, payment_method, status, payment_status,
		COALESCE(stripe_session_id, ''), COALESCE(stripe_payment_intent_id, ''), created_at, updated_at`

// AdmitBooking decides admission and inserts the booking in one transaction.
// The vehicle row is locked FOR UPDATE first, which serializes concurrent
// admissions for the same vehicle; the overlap check then runs under that
// lock, so two requests for overlapping windows cannot both pass it.
// Overlap uses the half-open interval test and ignores cancelled bookings.
// Returns apperrors.ErrVehicleUnavailable, apperrors.ErrBookingConflict, or
// a *apperrors.StorageError. On any rejection nothing is written.
func (r *BookingRepository) AdmitBooking(ctx context.Context, b *db.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("AdmitBooking.begin", err)
	}
	defer tx.Rollback()

	var available bool
	err = tx.QueryRowContext(ctx,
		`SELECT available FROM vehicles WHERE id = $1 FOR UPDATE`,
		b.VehicleID,
	).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrVehicleUnavailable
	}
	if err != nil {
		return apperrors.NewStorageError("AdmitBooking.vehicle", err)
	}

	var conflictID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM bookings
		WHERE vehicle_id = $1
		  AND status <> $2
		  AND start_time < $3
		  AND end_time > $4
		LIMIT 1`,
		b.VehicleID, db.BookingStatusCancelled, b.EndTime, b.StartTime,
	).Scan(&conflictID)
	if err == nil {
		return apperrors.ErrBookingConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewStorageError("AdmitBooking.overlap", err)
	}

	if !available {
		return apperrors.ErrVehicleUnavailable
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings
		(id, code, vehicle_id, customer_name, customer_email, customer_phone,
		 passengers, pickup_location, drop_location, start_time, end_time,
		 total_amount, payment_method, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at`,
		b.ID, b.Code, b.VehicleID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Passengers, b.PickupLocation, b.DropLocation, b.StartTime, b.EndTime,
		b.TotalAmount, b.PaymentMethod, b.Status, b.PaymentStatus,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return apperrors.NewStorageError("AdmitBooking.insert", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("AdmitBooking.commit", err)
	}
	return nil
}

// HasOverlap reports whether any non-cancelled booking for the vehicle
// overlaps [start, end). Used by the advisory availability probe.
func (r *BookingRepository) HasOverlap(ctx context.Context, vehicleID string, start, end time.Time) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE vehicle_id = $1
		  AND status <> $2
		  AND start_time < $3
		  AND end_time > $4`,
		vehicleID, db.BookingStatusCancelled, end, start,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking overlap for vehicle %s: %w", vehicleID, err)
	}
	return count > 0, nil
}

func (r *BookingRepository) GetBookingByCode(ctx context.Context, code, email string) (*entities.BookingResponse, error) {
	var res entities.BookingResponse
	err := r.DB.QueryRowContext(ctx, `
		SELECT b.id, b.code, b.vehicle_id, v.name,
		       b.customer_name, b.customer_email, b.customer_phone,
		       b.passengers, b.pickup_location, b.drop_location,
		       b.start_time, b.end_time, b.total_amount, b.payment_method,
		       b.status, b.payment_status, b.created_at, b.updated_at
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.code = $1 AND b.customer_email = $2`,
		code, email,
	).Scan(
		&res.ID, &res.Code, &res.VehicleID, &res.VehicleName,
		&res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&res.Passengers, &res.PickupLocation, &res.DropLocation,
		&res.StartTime, &res.EndTime, &res.TotalAmount, &res.PaymentMethod,
		&res.Status, &res.PaymentStatus, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking %s: %w", code, err)
	}
	return &res, nil
}

func (r *BookingRepository) GetBookingByCodeOnly(ctx context.Context, code string) (*db.Booking, error) {
	return r.getBooking(ctx, "code", code)
}

func (r *BookingRepository) GetBookingByStripeSessionID(ctx context.Context, sessionID string) (*db.Booking, error) {
	return r.getBooking(ctx, "stripe_session_id", sessionID)
}

func (r *BookingRepository) getBooking(ctx context.Context, column, value string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`
	err := r.DB.QueryRowContext(ctx, query, value).Scan(
		&b.ID, &b.Code, &b.VehicleID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Passengers, &b.PickupLocation, &b.DropLocation, &b.StartTime, &b.EndTime,
		&b.TotalAmount, &b.PaymentMethod, &b.Status, &b.PaymentStatus,
		&b.StripeSessionID, &b.StripePaymentIntentID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking by %s: %w", column, err)
	}
	return &b, nil
}

// ListBookings returns the admin listing with optional filters. date filters
// on the day the ride starts.
func (r *BookingRepository) ListBookings(ctx context.Context, date, vehicleType, status string, limit, offset int) (*entities.BookingsList, error) {
	where := ` FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		where += " AND DATE(b.start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if vehicleType != "" {
		where += " AND v.vehicle_type = $" + strconv.Itoa(idx)
		args = append(args, vehicleType)
		idx++
	}
	if status != "" {
		where += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*)"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	query := `SELECT b.id, b.code, b.vehicle_id, v.name,
		b.customer_name, b.customer_email, b.customer_phone,
		b.passengers, b.pickup_location, b.drop_location,
		b.start_time, b.end_time, b.total_amount, b.payment_method,
		b.status, b.payment_status, b.created_at, b.updated_at` +
		where + ` ORDER BY b.start_time DESC LIMIT $` + strconv.Itoa(idx) +
		` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset, Bookings: []entities.BookingResponse{}}
	for rows.Next() {
		var res entities.BookingResponse
		err := rows.Scan(
			&res.ID, &res.Code, &res.VehicleID, &res.VehicleName,
			&res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
			&res.Passengers, &res.PickupLocation, &res.DropLocation,
			&res.StartTime, &res.EndTime, &res.TotalAmount, &res.PaymentMethod,
			&res.Status, &res.PaymentStatus, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		list.Bookings = append(list.Bookings, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return list, nil
}

// UpdateBookingStatus transitions a booking's status by id.
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatusAndPayment transitions both lifecycle fields together, as the
// payment webhook does.
func (r *BookingRepository) UpdateStatusAndPayment(ctx context.Context, id, status, paymentStatus string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1`,
		id, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking %s payment state: %w", id, err)
	}
	return nil
}

// SetStripeSession records the checkout session created for a booking.
func (r *BookingRepository) SetStripeSession(ctx context.Context, id, sessionID, paymentIntentID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET stripe_session_id = $2, stripe_payment_intent_id = $3, updated_at = NOW()
		WHERE id = $1`,
		id, sessionID, paymentIntentID)
	if err != nil {
		return fmt.Errorf("error saving stripe session for booking %s: %w", id, err)
	}
	return nil
}
