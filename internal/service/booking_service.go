package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"indicab/internal/apperrors"
	"indicab/internal/db"
	"indicab/internal/entities"
	"indicab/internal/validate"
)

// minCancelNotice is how long before the ride start a customer may still
// cancel.
const minCancelNotice = 12 * time.Hour

// BookingStore is the persistence surface the booking service needs.
type BookingStore interface {
	AdmitBooking(ctx context.Context, b *db.Booking) error
	HasOverlap(ctx context.Context, vehicleID string, start, end time.Time) (bool, error)
	GetBookingByCode(ctx context.Context, code, email string) (*entities.BookingResponse, error)
	GetBookingByCodeOnly(ctx context.Context, code string) (*db.Booking, error)
	GetBookingByStripeSessionID(ctx context.Context, sessionID string) (*db.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	UpdateStatusAndPayment(ctx context.Context, id, status, paymentStatus string) error
	SetStripeSession(ctx context.Context, id, sessionID, paymentIntentID string) error
}

// VehicleStore is the read surface for the fleet.
type VehicleStore interface {
	GetByID(ctx context.Context, id string) (*db.Vehicle, error)
	List(ctx context.Context, onlyAvailable bool) ([]db.Vehicle, error)
}

// PaymentProvider creates checkout sessions and refunds them.
type PaymentProvider interface {
	CreateCheckoutSession(amount int64, currency, description, customerEmail string) (url, sessionID string, err error)
	RefundBySessionID(sessionID string) error
}

// Notifier fans a booking status change out to the customer.
type Notifier interface {
	SendBookingEmail(booking entities.BookingResponse, status string)
	SendBookingSMS(booking entities.BookingResponse, status string)
}

type BookingService struct {
	store    BookingStore
	vehicles VehicleStore
	payments PaymentProvider
	notifier Notifier
}

func NewBookingService(store BookingStore, vehicles VehicleStore, payments PaymentProvider, notifier Notifier) *BookingService {
	return &BookingService{
		store:    store,
		vehicles: vehicles,
		payments: payments,
		notifier: notifier,
	}
}

// CreateBooking validates the request and admits it. Validation runs before
// any storage access; on any rejection nothing is persisted. Callers may
// supply initial status and paymentStatus values; both default to pending.
// A successful admission also yields a checkout URL when the payment method
// is collected online.
func (s *BookingService) CreateBooking(ctx context.Context, req *entities.BookingRequest) (*entities.BookingConfirmation, error) {
	vb, verr := validate.Booking(req)
	if verr != nil {
		return nil, verr
	}

	status := vb.Status
	if status == "" {
		status = db.BookingStatusPending
	}
	paymentStatus := vb.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = db.PaymentStatusPending
	}

	booking := &db.Booking{
		ID:             uuid.NewString(),
		Code:           newBookingCode(),
		VehicleID:      vb.VehicleID,
		CustomerName:   vb.CustomerName,
		CustomerEmail:  vb.CustomerEmail,
		CustomerPhone:  vb.CustomerPhone,
		Passengers:     vb.Passengers,
		PickupLocation: vb.PickupLocation,
		DropLocation:   vb.DropLocation,
		StartTime:      vb.StartTime,
		EndTime:        vb.EndTime,
		TotalAmount:    vb.TotalAmount,
		PaymentMethod:  vb.PaymentMethod,
		Status:         status,
		PaymentStatus:  paymentStatus,
	}

	if err := s.store.AdmitBooking(ctx, booking); err != nil {
		return nil, err
	}

	conf := &entities.BookingConfirmation{
		ID:            booking.ID,
		Code:          booking.Code,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
	}

	if s.payments != nil && validate.OnlinePaymentMethod(vb.PaymentMethod) {
		description := "IndiCab booking " + booking.Code
		url, sessionID, err := s.payments.CreateCheckoutSession(int64(vb.TotalAmount)*100, "inr", description, vb.CustomerEmail)
		if err != nil {
			// The booking is admitted; the stale-pending sweep reclaims the
			// slot if the customer never gets a working payment link.
			log.Printf("Error creating checkout session for booking %s: %v", booking.Code, err)
			return nil, apperrors.NewStorageError("CreateBooking.checkout", err)
		}
		if err := s.store.SetStripeSession(ctx, booking.ID, sessionID, ""); err != nil {
			return nil, apperrors.NewStorageError("CreateBooking.session", err)
		}
		conf.PaymentURL = url
	}

	return conf, nil
}

// CheckAvailability is the advisory probe behind the booking form. Admission
// re-checks under a lock, so a positive answer here is not a reservation.
func (s *BookingService) CheckAvailability(ctx context.Context, req *entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	start, end, verr := validate.Window(req.StartDate, req.EndDate)
	if verr != nil {
		return nil, verr
	}

	resp := &entities.AvailabilityResponse{
		VehicleID:          req.VehicleID,
		RequestedStartTime: start,
		RequestedEndTime:   end,
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			resp.Message = "vehicle not found"
			return resp, nil
		}
		return nil, apperrors.NewStorageError("CheckAvailability.vehicle", err)
	}
	if !vehicle.Available {
		resp.Message = "vehicle is not accepting bookings"
		return resp, nil
	}

	overlap, err := s.store.HasOverlap(ctx, req.VehicleID, start, end)
	if err != nil {
		return nil, apperrors.NewStorageError("CheckAvailability.overlap", err)
	}
	if overlap {
		resp.Message = "vehicle already booked for the requested window"
		return resp, nil
	}

	resp.Available = true
	return resp, nil
}

// ListVehicles returns the bookable fleet for the public booking form.
func (s *BookingService) ListVehicles(ctx context.Context) ([]db.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx, true)
	if err != nil {
		return nil, apperrors.NewStorageError("ListVehicles", err)
	}
	return vehicles, nil
}

// GetBooking looks a booking up by its code and the customer's email.
func (s *BookingService) GetBooking(ctx context.Context, code, email string) (*entities.BookingResponse, error) {
	return s.store.GetBookingByCode(ctx, code, email)
}

// CancelBooking cancels a booking at least 12 hours before the ride starts,
// refunding any completed online payment and notifying the customer.
func (s *BookingService) CancelBooking(ctx context.Context, code string) error {
	booking, err := s.store.GetBookingByCodeOnly(ctx, code)
	if err != nil {
		return err
	}
	if booking.Status == db.BookingStatusCancelled {
		return nil
	}
	if time.Until(booking.StartTime) < minCancelNotice {
		return apperrors.ErrCancelWindowClosed
	}

	if booking.PaymentStatus == db.PaymentStatusCompleted && booking.StripeSessionID != "" && s.payments != nil {
		if err := s.payments.RefundBySessionID(booking.StripeSessionID); err != nil {
			return fmt.Errorf("could not refund booking %s: %w", code, err)
		}
	}

	if err := s.store.UpdateBookingStatus(ctx, booking.ID, db.BookingStatusCancelled); err != nil {
		return err
	}

	if resp, err := s.store.GetBookingByCode(ctx, code, booking.CustomerEmail); err == nil {
		s.notify(*resp, db.BookingStatusCancelled)
	}
	return nil
}

// ConfirmPaymentBySession transitions a booking to confirmed/completed after
// the payment provider reports the checkout session as paid, then notifies
// the customer. Called from the webhook handler.
func (s *BookingService) ConfirmPaymentBySession(ctx context.Context, sessionID, paymentIntentID string) error {
	booking, err := s.store.GetBookingByStripeSessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	if paymentIntentID != "" {
		if err := s.store.SetStripeSession(ctx, booking.ID, sessionID, paymentIntentID); err != nil {
			return err
		}
	}
	if err := s.store.UpdateStatusAndPayment(ctx, booking.ID, db.BookingStatusConfirmed, db.PaymentStatusCompleted); err != nil {
		return err
	}

	if resp, err := s.store.GetBookingByCode(ctx, booking.Code, booking.CustomerEmail); err == nil {
		s.notify(*resp, db.BookingStatusConfirmed)
	}
	return nil
}

// MarkPaymentFailedBySession records a failed or refunded payment and frees
// the calendar by cancelling the booking.
func (s *BookingService) MarkPaymentFailedBySession(ctx context.Context, sessionID string) error {
	booking, err := s.store.GetBookingByStripeSessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.store.UpdateStatusAndPayment(ctx, booking.ID, db.BookingStatusCancelled, db.PaymentStatusFailed)
}

func (s *BookingService) notify(booking entities.BookingResponse, status string) {
	if s.notifier == nil {
		return
	}
	s.notifier.SendBookingSMS(booking, status)
	s.notifier.SendBookingEmail(booking, status)
}

// newBookingCode returns the 8-hex-digit reference customers quote when
// looking up or cancelling a booking.
func newBookingCode() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%X", b[:])
}
