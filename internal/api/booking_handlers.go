package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"indicab/internal/db"
	"indicab/internal/entities"
)

// BookingAPI is the slice of the booking service the public handlers use.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req *entities.BookingRequest) (*entities.BookingConfirmation, error)
	CheckAvailability(ctx context.Context, req *entities.AvailabilityRequest) (*entities.AvailabilityResponse, error)
	ListVehicles(ctx context.Context) ([]db.Vehicle, error)
	GetBooking(ctx context.Context, code, email string) (*entities.BookingResponse, error)
	CancelBooking(ctx context.Context, code string) error
}

type BookingHandler struct {
	Service BookingAPI
}

func NewBookingHandler(svc BookingAPI) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	conf, err := h.Service.CreateBooking(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	resp, err := h.Service.CheckAvailability(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "email query parameter is required", Code: "bad_request"})
		return
	}

	booking, err := h.Service.GetBooking(r.Context(), code, email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelBooking(r.Context(), code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
