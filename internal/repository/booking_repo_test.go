package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"indicab/internal/apperrors"
	"indicab/internal/db"
)

const (
	vehicleLockQuery = `SELECT available FROM vehicles WHERE id = $1 FOR UPDATE`
	overlapQuery     = `SELECT id FROM bookings WHERE vehicle_id = $1 AND status <> $2 AND start_time < $3 AND end_time > $4 LIMIT 1`
	insertQuery      = `INSERT INTO bookings`
)

func newAdmissionBooking() *db.Booking {
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &db.Booking{
		ID:             "5f0c2a1e-9b7d-4c63-8a5f-2d1e0b9c7a64",
		Code:           "0A1B2C3D",
		VehicleID:      "veh-sedan-01",
		CustomerName:   "Asha Rao",
		CustomerEmail:  "asha.rao@example.com",
		CustomerPhone:  "+919876543210",
		Passengers:     2,
		PickupLocation: "Bengaluru Airport",
		DropLocation:   "Indiranagar",
		StartTime:      start,
		EndTime:        start.Add(48 * time.Hour),
		TotalAmount:    4200,
		PaymentMethod:  "card",
		Status:         db.BookingStatusPending,
		PaymentStatus:  db.PaymentStatusPending,
	}
}

// A successful admission locks the vehicle row first, runs the overlap check
// under that lock, inserts, and commits. Expectations are ordered, so this
// also pins the query sequence.
func TestAdmitBooking_LocksVehicleThenChecksOverlapThenInserts(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	b := newAdmissionBooking()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(vehicleLockQuery)).
		WithArgs(b.VehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
		WithArgs(b.VehicleID, db.BookingStatusCancelled, b.EndTime, b.StartTime).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(insertQuery).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	repo := NewBookingRepository(mockDB)
	require.NoError(t, repo.AdmitBooking(context.Background(), b))
	require.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

// An overlapping booking aborts the transaction before any insert runs.
func TestAdmitBooking_ConflictRollsBackWithoutInsert(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	b := newAdmissionBooking()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(vehicleLockQuery)).
		WithArgs(b.VehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
		WithArgs(b.VehicleID, db.BookingStatusCancelled, b.EndTime, b.StartTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-booking"))
	mock.ExpectRollback()

	repo := NewBookingRepository(mockDB)
	err = repo.AdmitBooking(context.Background(), b)
	require.ErrorIs(t, err, apperrors.ErrBookingConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A vehicle id with no row means there is nothing to lock; the transaction
// rolls back without touching the bookings table.
func TestAdmitBooking_MissingVehicleRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	b := newAdmissionBooking()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(vehicleLockQuery)).
		WithArgs(b.VehicleID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewBookingRepository(mockDB)
	err = repo.AdmitBooking(context.Background(), b)
	require.ErrorIs(t, err, apperrors.ErrVehicleUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A vehicle whose availability flag is off is rejected even when the window
// is free. The conflict check still runs first, so a conflicting window on a
// flagged-off vehicle reports the conflict.
func TestAdmitBooking_FlaggedOffVehicleRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	b := newAdmissionBooking()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(vehicleLockQuery)).
		WithArgs(b.VehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
		WithArgs(b.VehicleID, db.BookingStatusCancelled, b.EndTime, b.StartTime).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewBookingRepository(mockDB)
	err = repo.AdmitBooking(context.Background(), b)
	require.ErrorIs(t, err, apperrors.ErrVehicleUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

// An insert failure surfaces as a storage error and nothing is committed.
func TestAdmitBooking_InsertFailureIsStorageError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	b := newAdmissionBooking()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(vehicleLockQuery)).
		WithArgs(b.VehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
		WithArgs(b.VehicleID, db.BookingStatusCancelled, b.EndTime, b.StartTime).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(insertQuery).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	repo := NewBookingRepository(mockDB)
	err = repo.AdmitBooking(context.Background(), b)
	var serr *apperrors.StorageError
	require.ErrorAs(t, err, &serr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// HasOverlap passes the window with the bounds swapped into the half-open
// comparison: an existing booking overlaps when it starts before the
// requested end and ends after the requested start.
func TestHasOverlap_HalfOpenComparison(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	start := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE vehicle_id = $1 AND status <> $2 AND start_time < $3 AND end_time > $4`)).
		WithArgs("veh-sedan-01", db.BookingStatusCancelled, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewBookingRepository(mockDB)
	overlap, err := repo.HasOverlap(context.Background(), "veh-sedan-01", start, end)
	require.NoError(t, err)
	require.True(t, overlap)
	require.NoError(t, mock.ExpectationsWereMet())
}
