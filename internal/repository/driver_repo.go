package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"indicab/internal/apperrors"
	"indicab/internal/db"
)

type DriverRepository struct {
	DB *sql.DB
}

func NewDriverRepository(database *sql.DB) *DriverRepository {
	return &DriverRepository{DB: database}
}

func (r *DriverRepository) Create(ctx context.Context, d *db.Driver) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO drivers (id, name, phone, licence_number, vehicle_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Phone, d.LicenceNumber, d.VehicleID, d.Active,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) List(ctx context.Context) ([]db.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, phone, licence_number, vehicle_id, active, created_at, updated_at
		FROM drivers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing drivers: %w", err)
	}
	defer rows.Close()

	var drivers []db.Driver
	for rows.Next() {
		var d db.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenceNumber, &d.VehicleID, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning driver row: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepository) Update(ctx context.Context, d *db.Driver) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE drivers
		SET name = $2, phone = $3, licence_number = $4, vehicle_id = $5, active = $6, updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Phone, d.LicenceNumber, d.VehicleID, d.Active)
	if err != nil {
		return fmt.Errorf("error updating driver %s: %w", d.ID, err)
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

func (r *DriverRepository) GetByID(ctx context.Context, id string) (*db.Driver, error) {
	var d db.Driver
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, licence_number, vehicle_id, active, created_at, updated_at
		FROM drivers WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Phone, &d.LicenceNumber, &d.VehicleID, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying driver %s: %w", id, err)
	}
	return &d, nil
}
