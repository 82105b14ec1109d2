package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"indicab/internal/apperrors"
)

// errorResponse is the JSON error envelope. details carries the field-level
// breakdown for validation failures.
type errorResponse struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// writeError maps the error taxonomy to distinct HTTP responses so the
// caller can tell invalid input, a calendar conflict, an unavailable
// vehicle, and a server-side failure apart.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "invalid request",
			Code:    "validation_error",
			Details: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrBookingConflict):
		writeJSON(w, http.StatusConflict, errorResponse{
			Message: err.Error(),
			Code:    "booking_conflict",
		})
	case errors.Is(err, apperrors.ErrVehicleUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{
			Message: err.Error(),
			Code:    "vehicle_unavailable",
		})
	case errors.Is(err, apperrors.ErrCancelWindowClosed):
		writeJSON(w, http.StatusConflict, errorResponse{
			Message: err.Error(),
			Code:    "cancel_window_closed",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Message: "not found",
			Code:    "not_found",
		})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "something went wrong on our end",
			Code:    "internal_error",
			Details: "the failure has been logged",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
