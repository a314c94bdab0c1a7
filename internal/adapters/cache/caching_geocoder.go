package cache

import (
	"context"
	"fmt"
	"log"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
	"ride-assignment-service/internal/ports"
)

// CachingGeocoder resolves many place names at once, answering from the
// cache first and geocoding only the misses.
type CachingGeocoder struct {
	Geocoder ports.Geocoder
	Cache    GeocodeCache
}

// Lookup returns coordinates for every non-blank place, keyed as given, or an
// error naming the first place that could not be resolved. Cache write
// failures are only logged.
func (g *CachingGeocoder) Lookup(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Lookup")(&err)

	needed := make([]string, 0, len(places))
	for _, p := range places {
		needed = append(needed, NormalizePlace(p))
	}
	needed = uniqPlaces(needed)

	hits := make(map[string]domain.Coordinates)
	if g.Cache != nil {
		hits, err = g.Cache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("geocode lookup: read cache: %w", err)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	for _, p := range needed {
		if _, ok := hits[p]; ok {
			continue
		}
		if g.Geocoder == nil {
			return nil, fmt.Errorf("geocode lookup: %q not cached and no geocoder configured", p)
		}
		c, err := g.Geocoder.Geocode(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("geocode lookup: %w", err)
		}
		fresh[p] = c
	}

	if g.Cache != nil && len(fresh) > 0 {
		if err := g.Cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.Coordinates, len(places))
	for _, p := range places {
		norm := NormalizePlace(p)
		if c, ok := hits[norm]; ok {
			out[p] = c
		} else if c, ok := fresh[norm]; ok {
			out[p] = c
		}
	}

	return out, nil
}
