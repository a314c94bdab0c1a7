package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
	"ride-assignment-service/internal/ports"
)

// Assigner runs assignment passes against a routing provider and optional
// persistent distance store. Each run gets its own resolver so cached
// distances never leak between runs.
type Assigner struct {
	Provider ports.RouteProvider
	Store    ports.DistanceStore
	Resolver ResolverConfig
	Engine   EngineOptions
}

// Assign runs one pass over the given drivers and rides.
func (a *Assigner) Assign(
	ctx context.Context,
	drivers []domain.Driver,
	rides []domain.Ride,
) (domain.AssignmentResult, ResolverStats, error) {
	ctx = obs.WithRequestID(ctx)

	resolver := NewRoutedDistanceResolver(a.Provider, a.Store, a.Resolver)

	res, err := AssignRides(ctx, drivers, rides, resolver, a.Engine)
	stats := resolver.Stats()
	if err != nil {
		return domain.AssignmentResult{}, stats, err
	}

	log.Printf(
		"req_id=%s op=assign.summary drivers=%d rides=%d assigned=%d dropped=%d total_cost=%.2f routed_queries=%d cache_hits=%d store_hits=%d threshold_skips=%d fallbacks=%d",
		obs.RequestID(ctx), len(drivers), len(rides), res.AssignedRides(), len(rides)-res.AssignedRides(),
		res.TotalCost, stats.RoutedQueries, stats.CacheHits, stats.StoreHits, stats.ThresholdSkips, stats.Fallbacks,
	)

	return res, stats, nil
}

// ErrFleetLoad marks failures to read the fleet, as opposed to a failed run.
var ErrFleetLoad = errors.New("load fleet")

// RepositoryRun is one pass over a stored fleet, with the rides it was given
// so callers can report what was dropped.
type RepositoryRun struct {
	Result domain.AssignmentResult
	Stats  ResolverStats
	Rides  []domain.Ride
}

// AssignFromRepository loads the fleet from repo and runs one pass.
func (a *Assigner) AssignFromRepository(ctx context.Context, repo ports.FleetRepository) (RepositoryRun, error) {
	drivers, err := repo.ListDrivers(ctx)
	if err != nil {
		return RepositoryRun{}, fmt.Errorf("assign from repository: %w: list drivers: %w", ErrFleetLoad, err)
	}

	rides, err := repo.ListRides(ctx)
	if err != nil {
		return RepositoryRun{}, fmt.Errorf("assign from repository: %w: list rides: %w", ErrFleetLoad, err)
	}

	res, stats, err := a.Assign(ctx, drivers, rides)
	if err != nil {
		return RepositoryRun{Stats: stats}, err
	}
	return RepositoryRun{Result: res, Stats: stats, Rides: rides}, nil
}
