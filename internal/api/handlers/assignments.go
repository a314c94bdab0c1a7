package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"ride-assignment-service/internal/api/dto"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/ports"
	"ride-assignment-service/internal/services"
)

type AssignmentHandler struct {
	Assigner *services.Assigner
	Repo     ports.FleetRepository
}

// Assign runs one assignment pass over the drivers and rides in the request body.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AssignmentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	drivers, err := dto.DriversToDomain(req.Drivers)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	rides, err := dto.RidesToDomain(req.Rides)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, _, err := h.Assigner.Assign(r.Context(), drivers, rides)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewAssignmentResponse(res))
}

// Daily runs one assignment pass over the configured fleet and reports
// dropped rides and resolver counters alongside the assignments.
func (h *AssignmentHandler) Daily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run, err := h.Assigner.AssignFromRepository(r.Context(), h.Repo)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewAssignmentReport(run.Result, run.Rides, dto.ResolverStatsResponse{
		RoutedQueries:  run.Stats.RoutedQueries,
		CacheHits:      run.Stats.CacheHits,
		StoreHits:      run.Stats.StoreHits,
		ThresholdSkips: run.Stats.ThresholdSkips,
		Fallbacks:      run.Stats.Fallbacks,
	}))
}

func (h *AssignmentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrFleetLoad) {
		logFailure(r, "assign.load_fleet", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	logFailure(r, "assign.run", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
