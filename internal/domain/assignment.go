package domain

import "fmt"

// Assignment lists the rides accepted by one driver, in acceptance order.
type Assignment struct {
	DriverID string
	RideIDs  []string
}

// AssignmentResult is the outcome of one run. Drivers without rides and
// rides without a feasible driver do not appear.
type AssignmentResult struct {
	Assignments []Assignment
	TotalCost   float64
	// Unrounded cost charged for each accepted ride.
	RideCosts map[string]float64
	// Per-driver detail behind Assignments, in the same order.
	Schedules []DriverSchedule
}

// AssignedRides returns how many rides were placed.
func (r AssignmentResult) AssignedRides() int {
	n := 0
	for _, a := range r.Assignments {
		n += len(a.RideIDs)
	}
	return n
}

// ValidateFleet validates every driver and ride and rejects duplicate ids.
func ValidateFleet(drivers []Driver, rides []Ride) error {
	seenDrivers := make(map[string]struct{}, len(drivers))
	for i, d := range drivers {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("drivers[%d]: %w", i, err)
		}
		if _, ok := seenDrivers[d.ID]; ok {
			return fmt.Errorf("drivers[%d]: duplicate driver id %q: %w", i, d.ID, ErrInvalidInput)
		}
		seenDrivers[d.ID] = struct{}{}
	}

	seenRides := make(map[string]struct{}, len(rides))
	for i, r := range rides {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rides[%d]: %w", i, err)
		}
		if _, ok := seenRides[r.ID]; ok {
			return fmt.Errorf("rides[%d]: duplicate ride id %q: %w", i, r.ID, ErrInvalidInput)
		}
		seenRides[r.ID] = struct{}{}
	}

	return nil
}
