package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"indicab/internal/apperrors"
	"indicab/internal/db"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

const vehicleColumns = `id, name, vehicle_type, registration_number, seats, available, created_at, updated_at`

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.VehicleType, &v.RegistrationNumber, &v.Seats, &v.Available, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying vehicle %s: %w", id, err)
	}
	return &v, nil
}

// List returns the fleet, optionally restricted to bookable vehicles.
func (r *VehicleRepository) List(ctx context.Context, onlyAvailable bool) ([]db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if onlyAvailable {
		query += ` WHERE available = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.VehicleType, &v.RegistrationNumber, &v.Seats, &v.Available, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// SetAvailability flips the booking gate on a vehicle.
func (r *VehicleRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE vehicles SET available = $2, updated_at = NOW() WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("error updating vehicle %s availability: %w", id, err)
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
