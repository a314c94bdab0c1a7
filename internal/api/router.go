package api

import (
	"net/http"
	"ride-assignment-service/internal/api/handlers"
	"ride-assignment-service/internal/ports"
	"ride-assignment-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(assigner *services.Assigner, repo ports.FleetRepository) http.Handler {
	mux := http.NewServeMux()

	fleetHandler := &handlers.FleetHandler{Repo: repo}
	assignHandler := &handlers.AssignmentHandler{
		Assigner: assigner,
		Repo:     repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/drivers", fleetHandler.ListDrivers)
	mux.HandleFunc("/rides", fleetHandler.ListRides)
	mux.HandleFunc("/assignments", assignHandler.Assign)
	mux.HandleFunc("/assignments/daily", assignHandler.Daily)

	return loggingMiddleware(mux)
}
