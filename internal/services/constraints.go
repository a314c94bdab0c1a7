package services

import (
	"context"
	"math"
	"ride-assignment-service/internal/domain"
)

// DefaultSpeedKmh is the average travel speed used to estimate repositioning time.
const DefaultSpeedKmh = 60.0

// Rejection names the check that excluded a driver from a ride.
type Rejection string

const (
	RejectCapacity    Rejection = "capacity"
	RejectShift       Rejection = "shift"
	RejectBlocked     Rejection = "blocked"
	RejectDailyCap    Rejection = "daily_cap"
	RejectBusy        Rejection = "busy"
	RejectUnreachable Rejection = "unreachable"
)

// Verdict is the outcome of a feasibility check. EmptyLegKm is only set once
// the reachability check has run.
type Verdict struct {
	Feasible      bool
	Reason        Rejection
	EmptyLegKm    float64
	TravelMinutes int
}

// ConstraintFilter decides whether a driver can serve a ride given the
// driver's current availability and daily ledger.
type ConstraintFilter struct {
	Distances DistanceResolver
	SpeedKmh  float64
}

// Check runs the independent feasibility checks in order, cheapest first,
// and stops at the first one that fails. Only reachability resolves a distance.
func (f ConstraintFilter) Check(
	ctx context.Context,
	d domain.Driver,
	avail domain.Availability,
	ledger domain.Ledger,
	ride domain.Ride,
) Verdict {
	if d.Seats < ride.Seats {
		return Verdict{Reason: RejectCapacity}
	}

	if d.Shift != nil {
		if !ride.Start.Between(d.Shift.Start, d.Shift.End) || !ride.End.Between(d.Shift.Start, d.Shift.End) {
			return Verdict{Reason: RejectShift}
		}
	}

	if _, ok := d.BlockedMatch(ride.StartPoint); ok {
		return Verdict{Reason: RejectBlocked}
	}
	if _, ok := d.BlockedMatch(ride.EndPoint); ok {
		return Verdict{Reason: RejectBlocked}
	}

	if limit, ok := d.DailyCapMinutes(); ok && float64(ledger.Minutes(ride.Date)+ride.Duration()) > limit {
		return Verdict{Reason: RejectDailyCap}
	}

	if avail.BusyUntil.After(ride.Start) {
		return Verdict{Reason: RejectBusy}
	}

	emptyKm := f.Distances.Resolve(ctx, avail.Position, ride.StartCoords)
	travel := f.travelMinutes(emptyKm)
	if avail.BusyUntil.Add(travel).After(ride.Start) {
		return Verdict{Reason: RejectUnreachable, EmptyLegKm: emptyKm, TravelMinutes: travel}
	}

	return Verdict{Feasible: true, EmptyLegKm: emptyKm, TravelMinutes: travel}
}

// travelMinutes rounds the travel estimate up to whole minutes.
func (f ConstraintFilter) travelMinutes(km float64) int {
	speed := f.SpeedKmh
	if speed <= 0 {
		speed = DefaultSpeedKmh
	}
	return int(math.Ceil(km / speed * 60))
}
