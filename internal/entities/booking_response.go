package entities

import "time"

// BookingResponse is the customer-facing view of a booking.
type BookingResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	VehicleID      string    `json:"vehicle_id"`
	VehicleName    string    `json:"vehicle_name,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  string    `json:"customer_phone"`
	Passengers     int       `json:"passengers"`
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalAmount    int       `json:"total_amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookingsList is the paginated admin listing.
type BookingsList struct {
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}
