package distance

import (
	"context"
	"fmt"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"

	"googlemaps.github.io/maps"
)

// GoogleRouteProvider implements RouteProvider using the Google Maps Directions API.
type GoogleRouteProvider struct {
	client *maps.Client
}

// NewGoogleRouteProvider creates a provider for apiKey. Extra client options
// (base URL, rate limit) are passed through to the maps client.
func NewGoogleRouteProvider(apiKey string, opts ...maps.ClientOption) (*GoogleRouteProvider, error) {
	all := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)

	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleRouteProvider{client: client}, nil
}

// RouteDistanceKm returns the length of the first suggested driving route.
func (s *GoogleRouteProvider) RouteDistanceKm(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (_ float64, err error) {
	defer obs.Time(ctx, "google.RouteDistanceKm")(&err)

	r := &maps.DirectionsRequest{
		Origin:      from.String(),
		Destination: to.String(),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("directions %s -> %s: %w", from, to, ErrNoRoute)
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}

	return float64(meters) / 1000, nil
}
