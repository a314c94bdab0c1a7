package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/ports"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultThresholdKm  = 30.0
	DefaultQueryTimeout = 5 * time.Second
)

// DistanceResolver returns a driving distance in kilometers. It never fails;
// callers always receive a usable value.
type DistanceResolver interface {
	Resolve(ctx context.Context, from, to domain.Coordinates) float64
}

type ResolverConfig struct {
	// Legs whose great-circle distance exceeds ThresholdKm are never routed.
	ThresholdKm  float64
	QueryTimeout time.Duration
}

// ResolverStats is a snapshot of resolver activity for one run.
type ResolverStats struct {
	RoutedQueries  int64
	CacheHits      int64
	StoreHits      int64
	ThresholdSkips int64
	Fallbacks      int64
}

type pairKey struct {
	from domain.Coordinates
	to   domain.Coordinates
}

func (k pairKey) String() string {
	return fmt.Sprintf("%v,%v|%v,%v", k.from.Lat, k.from.Lon, k.to.Lat, k.to.Lon)
}

// RoutedDistanceResolver prefers routed distances for short legs and falls
// back to the great-circle distance for long legs and for any routing failure.
//
// Results are cached for the lifetime of the resolver, so one resolver should
// be built per assignment run. It is safe for concurrent use; concurrent
// lookups of the same pair share a single routed query.
type RoutedDistanceResolver struct {
	provider    ports.RouteProvider
	store       ports.DistanceStore
	thresholdKm float64
	timeout     time.Duration

	mu    sync.RWMutex
	cache map[pairKey]float64
	group singleflight.Group

	routedQueries  atomic.Int64
	cacheHits      atomic.Int64
	storeHits      atomic.Int64
	thresholdSkips atomic.Int64
	fallbacks      atomic.Int64
}

// NewRoutedDistanceResolver builds a resolver with an empty cache. A nil
// provider resolves every leg geometrically; a nil store disables the
// persistent tier.
func NewRoutedDistanceResolver(
	provider ports.RouteProvider,
	store ports.DistanceStore,
	cfg ResolverConfig,
) *RoutedDistanceResolver {
	if cfg.ThresholdKm <= 0 {
		cfg.ThresholdKm = DefaultThresholdKm
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}

	return &RoutedDistanceResolver{
		provider:    provider,
		store:       store,
		thresholdKm: cfg.ThresholdKm,
		timeout:     cfg.QueryTimeout,
		cache:       make(map[pairKey]float64),
	}
}

func (r *RoutedDistanceResolver) Resolve(ctx context.Context, from, to domain.Coordinates) float64 {
	key := pairKey{from: from, to: to}
	if km, ok := r.lookup(key); ok {
		r.cacheHits.Add(1)
		return km
	}

	geo := domain.HaversineKm(from, to)
	if geo > r.thresholdKm {
		r.thresholdSkips.Add(1)
		r.remember(key, geo)
		return geo
	}

	v, _, _ := r.group.Do(key.String(), func() (any, error) {
		// A caller that lost the race may arrive after the entry was written.
		if km, ok := r.lookup(key); ok {
			r.cacheHits.Add(1)
			return km, nil
		}

		km := r.routed(ctx, from, to, geo)
		r.remember(key, km)
		return km, nil
	})

	return v.(float64)
}

// Stats returns the counters accumulated so far.
func (r *RoutedDistanceResolver) Stats() ResolverStats {
	return ResolverStats{
		RoutedQueries:  r.routedQueries.Load(),
		CacheHits:      r.cacheHits.Load(),
		StoreHits:      r.storeHits.Load(),
		ThresholdSkips: r.thresholdSkips.Load(),
		Fallbacks:      r.fallbacks.Load(),
	}
}

func (r *RoutedDistanceResolver) lookup(key pairKey) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	km, ok := r.cache[key]
	return km, ok
}

func (r *RoutedDistanceResolver) remember(key pairKey, km float64) {
	r.mu.Lock()
	r.cache[key] = km
	r.mu.Unlock()
}

// routed consults the persistent store, then the routing service, and
// returns geo when neither produces a usable distance.
func (r *RoutedDistanceResolver) routed(ctx context.Context, from, to domain.Coordinates, geo float64) float64 {
	if r.store != nil {
		km, ok, err := r.store.GetDistance(ctx, from, to)
		if err != nil {
			log.Printf("warn: op=distance.store.get from=%s to=%s err=%v", from, to, err)
		} else if ok {
			r.storeHits.Add(1)
			return km
		}
	}

	if r.provider == nil {
		r.fallbacks.Add(1)
		return geo
	}

	km, err := r.query(ctx, from, to)
	if err != nil {
		r.fallbacks.Add(1)
		log.Printf("warn: op=resolver.route from=%s to=%s fallback_km=%.3f err=%v", from, to, geo, err)
		return geo
	}

	if r.store != nil {
		if err := r.store.PutDistance(ctx, from, to, km); err != nil {
			log.Printf("warn: op=distance.store.put from=%s to=%s err=%v", from, to, err)
		}
	}

	return km
}

func (r *RoutedDistanceResolver) query(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.routedQueries.Add(1)
	km, err := r.provider.RouteDistanceKm(ctx, from, to)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("route query timed out after %s: %w", r.timeout, err)
		}
		return 0, err
	}
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return 0, fmt.Errorf("route query returned unusable distance %v", km)
	}

	return km, nil
}
