package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
	"strings"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves place names using OpenRouteService (/geocode/search).
// Transient failures are retried; results are not cached here.
type ORSGeocoder struct {
	client *orsClient
	// Optional ISO country code restricting matches, e.g. "IL".
	country string
}

func NewORSGeocoder(cfg ORSConfig, country string) (*ORSGeocoder, error) {
	client, err := newORSClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("new ORS geocoder: %w", err)
	}
	return &ORSGeocoder{client: client, country: strings.TrimSpace(country)}, nil
}

// normalize ensures consistent lookups by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *ORSGeocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: place must be non-empty")
	}

	endpoint := g.client.baseURL + "/geocode/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		if g.country != "" {
			q.Set("boundary.country", g.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	return domain.Coordinates{
		Lon: coords[0],
		Lat: coords[1],
	}, nil
}
