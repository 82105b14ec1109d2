package db

import "time"

// Booking statuses. Bookings are never physically deleted; cancellation
// and completion are status transitions only.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type Booking struct {
	ID                    string
	Code                  string
	VehicleID             string
	CustomerName          string
	CustomerEmail         string
	CustomerPhone         string
	Passengers            int
	PickupLocation        string
	DropLocation          string
	StartTime             time.Time
	EndTime               time.Time
	TotalAmount           int
	PaymentMethod         string
	Status                string
	PaymentStatus         string
	StripeSessionID       string
	StripePaymentIntentID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Vehicle struct {
	ID                 string
	Name               string
	VehicleType        string
	RegistrationNumber string
	Seats              int
	Available          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Driver struct {
	ID            string
	Name          string
	Phone         string
	LicenceNumber string
	VehicleID     *string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
