package domain

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinates) String() string { return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon) }

// Validate reports coordinates outside the latitude/longitude ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return fmt.Errorf("coordinates %v: not a number: %w", c, ErrInvalidInput)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range: %w", c.Lat, ErrInvalidInput)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range: %w", c.Lon, ErrInvalidInput)
	}
	return nil
}

// HaversineKm returns the great-circle distance between a and b in kilometers
// on a sphere of mean Earth radius.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push h a hair above 1 for antipodal points.
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
