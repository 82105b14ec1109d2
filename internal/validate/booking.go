// Package validate holds the pure request checks that run before any
// persistence work. Validation of the same input always yields the same set
// of field errors.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"indicab/internal/apperrors"
	"indicab/internal/db"
	"indicab/internal/entities"
)

const (
	MinPassengers = 1
	MaxPassengers = 20
)

// phoneRE accepts E.164-like numbers: optional +, leading nonzero digit,
// 8 to 15 digits total.
var phoneRE = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

var paymentMethods = map[string]bool{
	"card":       true,
	"upi":        true,
	"netbanking": true,
	"cash":       true,
}

var bookingStatuses = map[string]bool{
	db.BookingStatusPending:   true,
	db.BookingStatusConfirmed: true,
	db.BookingStatusCancelled: true,
	db.BookingStatusCompleted: true,
}

var paymentStatuses = map[string]bool{
	db.PaymentStatusPending:   true,
	db.PaymentStatusCompleted: true,
	db.PaymentStatusFailed:    true,
}

var vehicleTypes = map[string]bool{
	"sedan":     true,
	"suv":       true,
	"hatchback": true,
	"luxury":    true,
	"tempo":     true,
}

// OnlinePaymentMethod reports whether the method is collected through the
// payment provider rather than in cash to the driver.
func OnlinePaymentMethod(method string) bool {
	return method != "cash"
}

// Booking checks a raw booking request and returns its normalized form.
// Every violated constraint is reported, not just the first.
func Booking(req *entities.BookingRequest) (*entities.ValidatedBooking, *apperrors.ValidationError) {
	verr := &apperrors.ValidationError{}

	if strings.TrimSpace(req.VehicleID) == "" {
		verr.Add("vehicle", "vehicle is required")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		verr.Add("customerName", "customer name is required")
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		verr.Add("customerEmail", "customer email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("customerEmail", "not a valid email address")
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		verr.Add("customerPhone", "customer phone is required")
	} else if !phoneRE.MatchString(phone) {
		verr.Add("customerPhone", "must be an E.164 phone number, e.g. +919876543210")
	}

	if req.Passengers < MinPassengers || req.Passengers > MaxPassengers {
		verr.Add("passengers", "must be between 1 and 20")
	}

	vehicleType := strings.ToLower(strings.TrimSpace(req.VehicleType))
	if vehicleType != "" && !vehicleTypes[vehicleType] {
		verr.Add("vehicleType", "must be one of sedan, suv, hatchback, luxury, tempo")
	}

	start, startOK := parseDate(req.StartDate)
	if !startOK {
		if strings.TrimSpace(req.StartDate) == "" {
			verr.Add("startDate", "start date is required")
		} else {
			verr.Add("startDate", "not a parseable date")
		}
	}
	end, endOK := parseDate(req.EndDate)
	if !endOK {
		if strings.TrimSpace(req.EndDate) == "" {
			verr.Add("endDate", "end date is required")
		} else {
			verr.Add("endDate", "not a parseable date")
		}
	}
	if startOK && endOK && !end.After(start) {
		verr.Add("endDate", "end date must be after start date")
	}

	if req.TotalAmount < 0 {
		verr.Add("totalAmount", "must not be negative")
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		verr.Add("paymentMethod", "payment method is required")
	} else if !paymentMethods[method] {
		verr.Add("paymentMethod", "must be one of card, upi, netbanking, cash")
	}

	// status and paymentStatus are optional; empty means the defaults apply.
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "" && !bookingStatuses[status] {
		verr.Add("status", "must be one of pending, confirmed, cancelled, completed")
	}
	paymentStatus := strings.ToLower(strings.TrimSpace(req.PaymentStatus))
	if paymentStatus != "" && !paymentStatuses[paymentStatus] {
		verr.Add("paymentStatus", "must be one of pending, completed, failed")
	}

	if !verr.Empty() {
		return nil, verr
	}

	return &entities.ValidatedBooking{
		VehicleID:      strings.TrimSpace(req.VehicleID),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerEmail:  email,
		CustomerPhone:  phone,
		Passengers:     req.Passengers,
		PickupLocation: strings.TrimSpace(req.PickupLocation),
		DropLocation:   strings.TrimSpace(req.DropLocation),
		VehicleType:    vehicleType,
		StartTime:      start,
		EndTime:        end,
		TotalAmount:    req.TotalAmount,
		PaymentMethod:  method,
		Status:         status,
		PaymentStatus:  paymentStatus,
		PromoCode:      strings.TrimSpace(req.PromoCode),
	}, nil
}

// Window checks only the date range of an availability probe.
func Window(startDate, endDate string) (start, end time.Time, verr *apperrors.ValidationError) {
	verr = &apperrors.ValidationError{}
	start, startOK := parseDate(startDate)
	if !startOK {
		verr.Add("startDate", "not a parseable date")
	}
	end, endOK := parseDate(endDate)
	if !endOK {
		verr.Add("endDate", "not a parseable date")
	}
	if startOK && endOK && !end.After(start) {
		verr.Add("endDate", "end date must be after start date")
	}
	if verr.Empty() {
		return start, end, nil
	}
	return time.Time{}, time.Time{}, verr
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates, always
// normalized to UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
