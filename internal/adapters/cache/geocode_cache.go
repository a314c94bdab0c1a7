package cache

import (
	"context"
	"ride-assignment-service/internal/domain"
	"strings"
)

// GeocodeCache maps normalized place names to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// NormalizePlace collapses whitespace so equivalent spellings share an entry.
func NormalizePlace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// uniqPlaces trims, drops empty entries and de-duplicates while keeping order.
func uniqPlaces(places []string) []string {
	seen := make(map[string]struct{}, len(places))
	uniq := make([]string, 0, len(places))
	for _, p := range places {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	return uniq
}
