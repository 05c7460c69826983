package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"parking-ledger/internal/parking"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-ledger"
}

type Handler struct {
	service *parking.InstrumentedService
}

func NewHandler(service *parking.InstrumentedService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(r.Context(), w, http.StatusOK, "", HealthResponse{
		Status:  "healthy",
		Service: getServiceName(),
	})
}

func (h *Handler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.RegisterEntry(ctx, req.Plate, req.Model)
	if err != nil {
		status, msg := entryErrorStatus(err)
		WriteError(ctx, w, status, msg)
		return
	}

	WriteSuccess(ctx, w, http.StatusCreated, "Entry registered", v)
}

func (h *Handler) RegisterExit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, charge, err := h.service.RegisterExit(ctx, req.Plate)
	if err != nil {
		status, msg := exitErrorStatus(err)
		WriteError(ctx, w, status, msg)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "Exit registered", ExitResponse{
		Vehicle:     v,
		BilledHours: parking.BilledHours(v.EntryTime, *v.ExitTime),
		Charge:      charge,
	})
}

func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	capacity := h.service.Capacity()
	available := h.service.AvailableSlots()

	WriteSuccess(ctx, w, http.StatusOK, "Slots retrieved", SlotsResponse{
		Capacity:  capacity,
		Occupied:  capacity - available,
		Available: available,
	})
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicles := h.service.ListVehicles(ctx)
	if vehicles == nil {
		vehicles = []parking.Vehicle{}
	}

	WriteSuccess(ctx, w, http.StatusOK, "Vehicles retrieved", vehicles)
}

func (h *Handler) FindByPlate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plate := chi.URLParam(r, "plate")
	v, err := h.service.FindByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, parking.ErrInvalidPlate) {
			WriteError(ctx, w, http.StatusBadRequest, "Invalid plate")
			return
		}
		WriteError(ctx, w, http.StatusNotFound, "Vehicle not found")
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "Vehicle found", v)
}

// entryErrorStatus maps domain errors to HTTP statuses. Capacity and
// duplicate-plate failures are conflicts, matching the entry being refused
// rather than malformed.
func entryErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, parking.ErrInvalidPlate):
		return http.StatusBadRequest, "Plate is required and may only use letters, digits and dashes"
	case errors.Is(err, parking.ErrInvalidModel):
		return http.StatusBadRequest, "Model is required"
	case errors.Is(err, parking.ErrCapacityExceeded):
		return http.StatusConflict, "No slots available"
	case errors.Is(err, parking.ErrAlreadyParked):
		return http.StatusConflict, "Vehicle with this plate is already parked"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func exitErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, parking.ErrInvalidPlate):
		return http.StatusBadRequest, "Plate is required and may only use letters, digits and dashes"
	case errors.Is(err, parking.ErrVehicleNotFound):
		return http.StatusNotFound, "No parked vehicle with this plate"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
