package entities

// BookingsReport is the admin dashboard summary.
type BookingsReport struct {
	TotalBookings     int64            `json:"total_bookings"`
	BookingsByStatus  map[string]int64 `json:"bookings_by_status"`
	CompletedRevenue  int64            `json:"completed_revenue"`
	AvailableVehicles int64            `json:"available_vehicles"`
	TotalVehicles     int64            `json:"total_vehicles"`
	ActiveDrivers     int64            `json:"active_drivers"`
}
