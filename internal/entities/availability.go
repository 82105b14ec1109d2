package entities

import "time"

// AvailabilityRequest asks whether a vehicle is free for a window.
type AvailabilityRequest struct {
	VehicleID string `json:"vehicle"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AvailabilityResponse reports the outcome of an availability probe. It is
// advisory only; admission re-checks under a lock.
type AvailabilityResponse struct {
	VehicleID          string    `json:"vehicle_id"`
	RequestedStartTime time.Time `json:"requested_start_time"`
	RequestedEndTime   time.Time `json:"requested_end_time"`
	Available          bool      `json:"available"`
	Message            string    `json:"message,omitempty"`
}
