package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"ride-assignment-service/internal/domain"
	"strings"
)

// FlexibleID accepts identifiers encoded either as JSON strings or numbers.
// It always marshals as a string.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	*id = FlexibleID(n.String())
	return nil
}

// DriverRecord is the wire form of a driver. Coordinates are [lat, lon].
type DriverRecord struct {
	DriverID          FlexibleID `json:"driverId"`
	City              string     `json:"city"`
	CityCoords        []float64  `json:"city_coords"`
	NumberOfSeats     int        `json:"numberOfSeats"`
	FuelCost          float64    `json:"fuelCost"`
	ShiftStart        string     `json:"shiftStart,omitempty"`
	ShiftEnd          string     `json:"shiftEnd,omitempty"`
	MaxDailyWorkHours *float64   `json:"maxDailyWorkHours,omitempty"`
	BlockedAddresses  []string   `json:"blockedAddresses,omitempty"`
}

// RideRecord is the wire form of a ride. Coordinates are [lat, lon].
type RideRecord struct {
	ID               FlexibleID `json:"_id"`
	Date             string     `json:"date"`
	StartTime        string     `json:"startTime"`
	EndTime          string     `json:"endTime"`
	StartPoint       string     `json:"startPoint"`
	StartPointCoords []float64  `json:"startPoint_coords"`
	EndPoint         string     `json:"endPoint"`
	EndPointCoords   []float64  `json:"endPoint_coords"`
	NumberOfSeats    int        `json:"numberOfSeats"`
}

func (r DriverRecord) ToDomain() (domain.Driver, error) {
	id := strings.TrimSpace(string(r.DriverID))

	home, err := coordsFromPair(r.CityCoords)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("driver %q: city_coords: %w", id, err)
	}

	d := domain.Driver{
		ID:       id,
		City:     r.City,
		Home:     home,
		Seats:    r.NumberOfSeats,
		FuelCost: r.FuelCost,
		Blocked:  r.BlockedAddresses,
	}

	start, end := strings.TrimSpace(r.ShiftStart), strings.TrimSpace(r.ShiftEnd)
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return domain.Driver{}, fmt.Errorf("driver %q: shiftStart and shiftEnd must be given together: %w", id, domain.ErrInvalidInput)
	default:
		s, err := domain.ParseClock(start)
		if err != nil {
			return domain.Driver{}, fmt.Errorf("driver %q: shiftStart: %w", id, err)
		}
		e, err := domain.ParseClock(end)
		if err != nil {
			return domain.Driver{}, fmt.Errorf("driver %q: shiftEnd: %w", id, err)
		}
		d.Shift = &domain.Shift{Start: s, End: e}
	}

	if r.MaxDailyWorkHours != nil {
		h := *r.MaxDailyWorkHours
		if math.IsNaN(h) || h <= 0 {
			return domain.Driver{}, fmt.Errorf("driver %q: maxDailyWorkHours must be positive: %w", id, domain.ErrInvalidInput)
		}
		d.MaxDailyHours = &h
	}

	if err := d.Validate(); err != nil {
		return domain.Driver{}, err
	}
	return d, nil
}

func (r RideRecord) ToDomain() (domain.Ride, error) {
	id := strings.TrimSpace(string(r.ID))

	start, err := domain.ParseClock(r.StartTime)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("ride %q: startTime: %w", id, err)
	}
	end, err := domain.ParseClock(r.EndTime)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("ride %q: endTime: %w", id, err)
	}
	from, err := coordsFromPair(r.StartPointCoords)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("ride %q: startPoint_coords: %w", id, err)
	}
	to, err := coordsFromPair(r.EndPointCoords)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("ride %q: endPoint_coords: %w", id, err)
	}

	ride := domain.Ride{
		ID:          id,
		Date:        strings.TrimSpace(r.Date),
		Start:       start,
		End:         end,
		StartPoint:  r.StartPoint,
		EndPoint:    r.EndPoint,
		StartCoords: from,
		EndCoords:   to,
		Seats:       r.NumberOfSeats,
	}
	if err := ride.Validate(); err != nil {
		return domain.Ride{}, err
	}
	return ride, nil
}

func DriverRecordFrom(d domain.Driver) DriverRecord {
	r := DriverRecord{
		DriverID:         FlexibleID(d.ID),
		City:             d.City,
		CityCoords:       pairFromCoords(d.Home),
		NumberOfSeats:    d.Seats,
		FuelCost:         d.FuelCost,
		BlockedAddresses: d.Blocked,
	}
	if d.Shift != nil {
		r.ShiftStart = d.Shift.Start.String()
		r.ShiftEnd = d.Shift.End.String()
	}
	if d.MaxDailyHours != nil {
		h := *d.MaxDailyHours
		r.MaxDailyWorkHours = &h
	}
	return r
}

func RideRecordFrom(r domain.Ride) RideRecord {
	return RideRecord{
		ID:               FlexibleID(r.ID),
		Date:             r.Date,
		StartTime:        r.Start.String(),
		EndTime:          r.End.String(),
		StartPoint:       r.StartPoint,
		StartPointCoords: pairFromCoords(r.StartCoords),
		EndPoint:         r.EndPoint,
		EndPointCoords:   pairFromCoords(r.EndCoords),
		NumberOfSeats:    r.Seats,
	}
}

// DriversToDomain converts and validates every record, failing on the first bad one.
func DriversToDomain(records []DriverRecord) ([]domain.Driver, error) {
	out := make([]domain.Driver, 0, len(records))
	for i, r := range records {
		d, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("drivers[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// RidesToDomain converts and validates every record, failing on the first bad one.
func RidesToDomain(records []RideRecord) ([]domain.Ride, error) {
	out := make([]domain.Ride, 0, len(records))
	for i, r := range records {
		ride, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("rides[%d]: %w", i, err)
		}
		out = append(out, ride)
	}
	return out, nil
}

func coordsFromPair(pair []float64) (domain.Coordinates, error) {
	if len(pair) != 2 {
		return domain.Coordinates{}, fmt.Errorf("want [lat, lon], got %d values: %w", len(pair), domain.ErrInvalidInput)
	}
	c := domain.Coordinates{Lat: pair[0], Lon: pair[1]}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, err
	}
	return c, nil
}

func pairFromCoords(c domain.Coordinates) []float64 { return []float64{c.Lat, c.Lon} }
