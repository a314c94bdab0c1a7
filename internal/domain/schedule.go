package domain

// ScheduledRide is one accepted ride in a driver's day, priced at the moment
// it was committed.
type ScheduledRide struct {
	RideID     string
	Date       string
	Start      Clock
	End        Clock
	EmptyLegKm float64
	RideKm     float64
	Cost       float64
}

// DriverSchedule is the ordered sequence of rides a driver accepted in one run,
// with aggregate distance and cost.
type DriverSchedule struct {
	DriverID string
	Rides    []ScheduledRide
}

// TotalKm sums empty legs and ride legs.
func (s DriverSchedule) TotalKm() float64 {
	km := 0.0
	for _, r := range s.Rides {
		km += r.EmptyLegKm + r.RideKm
	}
	return km
}

func (s DriverSchedule) TotalCost() float64 {
	cost := 0.0
	for _, r := range s.Rides {
		cost += r.Cost
	}
	return cost
}
