package domain

import (
	"fmt"
	"math"
	"strings"
)

// Shift is the inclusive window in which a driver accepts rides.
type Shift struct {
	Start Clock
	End   Clock
}

// Driver is immutable input for the duration of an assignment run.
//
// Shift and MaxDailyHours are optional: a nil Shift places no window on
// the driver and a nil MaxDailyHours leaves the working day uncapped.
type Driver struct {
	ID              string
	City            string
	Home            Coordinates
	Seats           int
	FuelCost        float64
	Shift           *Shift
	MaxDailyHours   *float64
	Blocked         []string
}

// DailyCapMinutes returns the daily working limit in minutes, unrounded.
func (d Driver) DailyCapMinutes() (float64, bool) {
	if d.MaxDailyHours == nil {
		return 0, false
	}
	return *d.MaxDailyHours * 60, true
}

// DayStart is the earliest clock at which the driver can take a ride.
func (d Driver) DayStart() Clock {
	if d.Shift != nil {
		return d.Shift.Start
	}
	return Midnight
}

// BlockedMatch returns the first blocked entry that occurs, case-insensitively,
// inside location. Empty entries never match.
func (d Driver) BlockedMatch(location string) (string, bool) {
	loc := strings.ToLower(location)
	for _, b := range d.Blocked {
		needle := strings.ToLower(strings.TrimSpace(b))
		if needle == "" {
			continue
		}
		if strings.Contains(loc, needle) {
			return b, true
		}
	}
	return "", false
}

func (d Driver) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("driver: id must not be empty: %w", ErrInvalidInput)
	}
	if d.Seats <= 0 {
		return fmt.Errorf("driver %q: seats must be positive, got %d: %w", d.ID, d.Seats, ErrInvalidInput)
	}
	if d.FuelCost < 0 {
		return fmt.Errorf("driver %q: fuel cost must not be negative: %w", d.ID, ErrInvalidInput)
	}
	if err := d.Home.Validate(); err != nil {
		return fmt.Errorf("driver %q: home: %w", d.ID, err)
	}
	if d.Shift != nil && d.Shift.End.Before(d.Shift.Start) {
		return fmt.Errorf("driver %q: shift ends %s before it starts %s: %w",
			d.ID, d.Shift.End, d.Shift.Start, ErrInvalidInput)
	}
	if d.MaxDailyHours != nil && (math.IsNaN(*d.MaxDailyHours) || *d.MaxDailyHours <= 0) {
		return fmt.Errorf("driver %q: daily cap must be positive: %w", d.ID, ErrInvalidInput)
	}
	return nil
}
