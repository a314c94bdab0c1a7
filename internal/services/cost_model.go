package services

import "ride-assignment-service/internal/domain"

// DefaultHourlyRate is the driver-time cost per hour of ride.
const DefaultHourlyRate = 30.0

// CostModel prices a feasible (driver, ride) pairing as driver time plus
// fuel for the ride leg and the empty leg.
type CostModel struct {
	HourlyRate float64
}

func (m CostModel) Cost(d domain.Driver, ride domain.Ride, emptyLegKm, rideKm float64) float64 {
	rate := m.HourlyRate
	if rate <= 0 {
		rate = DefaultHourlyRate
	}

	driverTime := float64(ride.Duration()) / 60 * rate
	rideFuel := rideKm * d.FuelCost
	emptyFuel := emptyLegKm * d.FuelCost

	return driverTime + rideFuel + emptyFuel
}
