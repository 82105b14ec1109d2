package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"indicab/internal/apperrors"
	"indicab/internal/db"
	"indicab/internal/entities"
	"indicab/internal/repository"
)

// validStatuses are the booking statuses an administrator may set from the
// dashboard.
var validStatuses = map[string]bool{
	db.BookingStatusPending:   true,
	db.BookingStatusConfirmed: true,
	db.BookingStatusCancelled: true,
	db.BookingStatusCompleted: true,
}

type AdminService struct {
	adminRepo   *repository.AdminRepository
	bookingRepo *repository.BookingRepository
	vehicleRepo *repository.VehicleRepository
	driverRepo  *repository.DriverRepository
}

func NewAdminService(adminRepo *repository.AdminRepository, bookingRepo *repository.BookingRepository, vehicleRepo *repository.VehicleRepository, driverRepo *repository.DriverRepository) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
	}
}

func (s *AdminService) ListBookings(ctx context.Context, date, vehicleType, status string, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.ListBookings(ctx, date, vehicleType, status, limit, offset)
}

func (s *AdminService) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if !validStatuses[status] {
		verr := &apperrors.ValidationError{}
		verr.Add("status", "must be one of pending, confirmed, cancelled, completed")
		return verr
	}
	return s.bookingRepo.UpdateBookingStatus(ctx, id, status)
}

func (s *AdminService) ListVehicles(ctx context.Context) ([]db.Vehicle, error) {
	return s.vehicleRepo.List(ctx, false)
}

func (s *AdminService) SetVehicleAvailability(ctx context.Context, id string, available bool) error {
	return s.vehicleRepo.SetAvailability(ctx, id, available)
}

func (s *AdminService) ListDrivers(ctx context.Context) ([]db.Driver, error) {
	return s.driverRepo.List(ctx)
}

func (s *AdminService) CreateDriver(ctx context.Context, d *db.Driver) error {
	if strings.TrimSpace(d.Name) == "" {
		verr := &apperrors.ValidationError{}
		verr.Add("name", "driver name is required")
		return verr
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return s.driverRepo.Create(ctx, d)
}

func (s *AdminService) UpdateDriver(ctx context.Context, d *db.Driver) error {
	return s.driverRepo.Update(ctx, d)
}

func (s *AdminService) GetReport(ctx context.Context) (*entities.BookingsReport, error) {
	return s.adminRepo.GetBookingsReport(ctx)
}
