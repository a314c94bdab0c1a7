package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
	Units        string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// matrix endpoint with a single source and destination.
//
// Each query is a single attempt. Callers treat any failure as a cue to use
// an approximation, so retrying here would only add latency. The provider
// is safe for concurrent use.
type ORSRouteProvider struct {
	client *orsClient
}

func NewORSRouteProvider(cfg ORSConfig) (*ORSRouteProvider, error) {
	client, err := newORSClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("new ORS route provider: %w", err)
	}
	return &ORSRouteProvider{client: client}, nil
}

func (o *ORSRouteProvider) RouteDistanceKm(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (_ float64, err error) {
	defer obs.Time(ctx, "ors.RouteDistanceKm")(&err)

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.client.baseURL, o.client.profile)

	bodyObj := matrixRequest{
		Locations:    [][]float64{from.CoordsToList(), to.CoordsToList()},
		Destinations: []int{1},
		Metrics:      []string{"distance"},
		Sources:      []int{0},
		Units:        "km",
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return 0, fmt.Errorf("marshal matrix request: %w", err)
	}

	req, err := o.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}

	resp, err := o.client.do(req)
	if err != nil {
		return 0, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return 0, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Distances[0]) != 1 {
		return 0, fmt.Errorf("expected a 1x1 distance matrix, got %d rows: %w", len(mr.Distances), ErrNoRoute)
	}

	// ORS reports unroutable pairs as null.
	km := mr.Distances[0][0]
	if km == nil {
		return 0, fmt.Errorf("matrix returned no distance for %s -> %s: %w", from, to, ErrNoRoute)
	}

	return *km, nil
}
