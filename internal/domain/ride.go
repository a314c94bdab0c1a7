package domain

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the service date format. Dates in this layout order
// correctly as plain strings.
const DateLayout = "2006-01-02"

// Ride is a single transport request for one service date.
// Rides carry no driver reference; assignment is recorded by the engine.
type Ride struct {
	ID          string
	Date        string
	Start       Clock
	End         Clock
	StartPoint  string
	EndPoint    string
	StartCoords Coordinates
	EndCoords   Coordinates
	Seats       int
}

// Duration is the scheduled ride length in minutes.
func (r Ride) Duration() int { return Diff(r.Start, r.End) }

// Compare orders rides by (date, start time), returning -1, 0 or +1.
func (r Ride) Compare(other Ride) int {
	if c := cmp.Compare(r.Date, other.Date); c != 0 {
		return c
	}
	return cmp.Compare(r.Start, other.Start)
}

func (r Ride) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("ride: id must not be empty: %w", ErrInvalidInput)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("ride %q: date %q: %w", r.ID, r.Date, ErrInvalidInput)
	}
	// Rides crossing midnight are not modeled.
	if r.End.Before(r.Start) {
		return fmt.Errorf("ride %q: ends %s before it starts %s: %w", r.ID, r.End, r.Start, ErrInvalidInput)
	}
	if r.Seats <= 0 {
		return fmt.Errorf("ride %q: seats must be positive, got %d: %w", r.ID, r.Seats, ErrInvalidInput)
	}
	if err := r.StartCoords.Validate(); err != nil {
		return fmt.Errorf("ride %q: start point: %w", r.ID, err)
	}
	if err := r.EndCoords.Validate(); err != nil {
		return fmt.Errorf("ride %q: end point: %w", r.ID, err)
	}
	return nil
}
