package handlers

import (
	"net/http"
	"ride-assignment-service/internal/api/dto"
	"ride-assignment-service/internal/ports"
)

// FleetHandler exposes read-only views of the configured fleet.
type FleetHandler struct {
	Repo ports.FleetRepository
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	drivers, err := h.Repo.ListDrivers(r.Context())
	if err != nil {
		logFailure(r, "fleet.list_drivers", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDriversResponse{
		Drivers: make([]dto.DriverRecord, 0, len(drivers)),
	}
	for _, d := range drivers {
		res.Drivers = append(res.Drivers, dto.DriverRecordFrom(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *FleetHandler) ListRides(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rides, err := h.Repo.ListRides(r.Context())
	if err != nil {
		logFailure(r, "fleet.list_rides", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRidesResponse{
		Rides: make([]dto.RideRecord, 0, len(rides)),
	}
	for _, ride := range rides {
		res.Rides = append(res.Rides, dto.RideRecordFrom(ride))
	}

	writeJSON(w, r, http.StatusOK, res)
}
