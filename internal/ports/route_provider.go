package ports

import (
	"context"
	"ride-assignment-service/internal/domain"
)

// Contract for a road-network routing service.
type RouteProvider interface {
	// Return the driving distance in kilometers between two points.
	// Any failure, including an empty route set, is reported as an error.
	RouteDistanceKm(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

// Contract for resolving a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
