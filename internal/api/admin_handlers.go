package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"indicab/internal/db"
	"indicab/internal/entities"
)

// AdminAPI is the slice of the admin service the dashboard handlers use.
type AdminAPI interface {
	ListBookings(ctx context.Context, date, vehicleType, status string, limit, offset int) (*entities.BookingsList, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	ListVehicles(ctx context.Context) ([]db.Vehicle, error)
	SetVehicleAvailability(ctx context.Context, id string, available bool) error
	ListDrivers(ctx context.Context) ([]db.Driver, error)
	CreateDriver(ctx context.Context, d *db.Driver) error
	UpdateDriver(ctx context.Context, d *db.Driver) error
	GetReport(ctx context.Context) (*entities.BookingsReport, error)
}

type AdminHandler struct {
	Service AdminAPI
}

func NewAdminHandler(svc AdminAPI) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	list, err := h.Service.ListBookings(r.Context(), q.Get("date"), q.Get("vehicle_type"), q.Get("status"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	if err := h.Service.UpdateBookingStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking updated"})
}

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *AdminHandler) UpdateVehicleAvailability(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	if err := h.Service.SetVehicleAvailability(r.Context(), id, req.Available); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

func (h *AdminHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Service.ListDrivers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *AdminHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var d db.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	if err := h.Service.CreateDriver(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *AdminHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var d db.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}
	d.ID = mux.Vars(r)["id"]

	if err := h.Service.UpdateDriver(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.GetReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
