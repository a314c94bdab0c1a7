package repositories

import (
	"context"
	"fmt"
	"log"
	"ride-assignment-service/internal/api/dto"
	"ride-assignment-service/internal/domain"
	"strings"
)

// PlaceLookup resolves place names to coordinates in bulk, keyed as given.
type PlaceLookup interface {
	Lookup(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
}

// FleetWriter persists a validated fleet.
type FleetWriter interface {
	SaveFleet(ctx context.Context, drivers []domain.Driver, rides []domain.Ride) error
}

// FillMissingCoordinates geocodes every record whose coordinates are absent,
// using the city for drivers and the start/end point names for rides.
// Records that already carry coordinates are left untouched.
func FillMissingCoordinates(
	ctx context.Context,
	lookup PlaceLookup,
	drivers []dto.DriverRecord,
	rides []dto.RideRecord,
) error {
	var places []string
	for _, d := range drivers {
		if len(d.CityCoords) == 0 {
			places = append(places, d.City)
		}
	}
	for _, r := range rides {
		if len(r.StartPointCoords) == 0 {
			places = append(places, r.StartPoint)
		}
		if len(r.EndPointCoords) == 0 {
			places = append(places, r.EndPoint)
		}
	}
	if len(places) == 0 {
		return nil
	}
	if lookup == nil {
		return fmt.Errorf("fill coordinates: %d places lack coordinates and no geocoder is configured", len(places))
	}

	for _, p := range places {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("fill coordinates: record without coordinates has no place name: %w", domain.ErrInvalidInput)
		}
	}

	found, err := lookup.Lookup(ctx, places)
	if err != nil {
		return fmt.Errorf("fill coordinates: %w", err)
	}

	pair := func(place string) ([]float64, error) {
		c, ok := found[place]
		if !ok {
			return nil, fmt.Errorf("fill coordinates: no coordinates for %q", place)
		}
		return []float64{c.Lat, c.Lon}, nil
	}

	for i := range drivers {
		if len(drivers[i].CityCoords) > 0 {
			continue
		}
		if drivers[i].CityCoords, err = pair(drivers[i].City); err != nil {
			return err
		}
	}
	for i := range rides {
		if len(rides[i].StartPointCoords) == 0 {
			if rides[i].StartPointCoords, err = pair(rides[i].StartPoint); err != nil {
				return err
			}
		}
		if len(rides[i].EndPointCoords) == 0 {
			if rides[i].EndPointCoords, err = pair(rides[i].EndPoint); err != nil {
				return err
			}
		}
	}

	log.Printf("op=seed.geocode places=%d", len(places))
	return nil
}

// SeedFromJSON populates the fleet tables from drivers and rides JSON files.
// Missing coordinates are geocoded through lookup, which may be nil when the
// files are fully specified.
func SeedFromJSON(
	ctx context.Context,
	w FleetWriter,
	lookup PlaceLookup,
	driversPath string,
	ridesPath string,
) error {
	driverRecords, err := ReadDriverRecords(driversPath)
	if err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}
	rideRecords, err := ReadRideRecords(ridesPath)
	if err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}

	if err := FillMissingCoordinates(ctx, lookup, driverRecords, rideRecords); err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}

	drivers, err := dto.DriversToDomain(driverRecords)
	if err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}
	rides, err := dto.RidesToDomain(rideRecords)
	if err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}
	if err := domain.ValidateFleet(drivers, rides); err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}

	if err := w.SaveFleet(ctx, drivers, rides); err != nil {
		return err
	}

	log.Printf("op=seed.fleet drivers=%d rides=%d", len(drivers), len(rides))
	return nil
}
