package ports

import (
	"context"
	"ride-assignment-service/internal/domain"
)

// Port: persistent storage for routed distances that outlives a single run.
// Keys are the ordered (from, to) pair.
type DistanceStore interface {
	// Return the stored distance and whether one was found.
	GetDistance(ctx context.Context, from, to domain.Coordinates) (float64, bool, error)
	PutDistance(ctx context.Context, from, to domain.Coordinates, km float64) error
}
