package entities

import "time"

// BookingRequest is the raw payload for POST /api/bookings. Dates arrive as
// strings so that unparseable values surface as field errors instead of a
// bare decode failure.
type BookingRequest struct {
	VehicleID      string `json:"vehicle"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	Passengers     int    `json:"passengers"`
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
	VehicleType    string `json:"vehicleType"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	TotalAmount    int    `json:"totalAmount"`
	PaymentMethod  string `json:"paymentMethod"`
	Status         string `json:"status,omitempty"`
	PaymentStatus  string `json:"paymentStatus,omitempty"`
	PromoCode      string `json:"promoCode,omitempty"`
}

// ValidatedBooking is the normalized, typed form of a BookingRequest after
// it has passed validation.
type ValidatedBooking struct {
	VehicleID      string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Passengers     int
	PickupLocation string
	DropLocation   string
	VehicleType    string
	StartTime      time.Time
	EndTime        time.Time
	TotalAmount    int
	PaymentMethod  string
	Status         string
	PaymentStatus  string
	PromoCode      string
}

// BookingConfirmation is the 201 body for a successful admission.
type BookingConfirmation struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
}
