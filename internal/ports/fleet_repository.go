package ports

import (
	"context"
	"ride-assignment-service/internal/domain"
)

// Port: a boundary for retrieving the drivers and rides of one run.
type FleetRepository interface {
	// Retrieve drivers in their canonical order. The order breaks cost ties.
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	ListRides(ctx context.Context) ([]domain.Ride, error)
}
