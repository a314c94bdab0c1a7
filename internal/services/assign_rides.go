package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 8

type EngineOptions struct {
	HourlyRate float64
	SpeedKmh   float64
	// Upper bound on drivers evaluated concurrently for one ride.
	Workers int
	// Log every dropped ride with the rejection counts behind it.
	LogDrops bool
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.HourlyRate <= 0 {
		o.HourlyRate = DefaultHourlyRate
	}
	if o.SpeedKmh <= 0 {
		o.SpeedKmh = DefaultSpeedKmh
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

// driverState is the per-driver mutable state, indexed like the driver list.
type driverState struct {
	avail  domain.Availability
	ledger domain.Ledger
	rides  []domain.ScheduledRide
}

type candidate struct {
	verdict Verdict
	rideKm  float64
	cost    float64
}

// AssignRides assigns rides to drivers with a chronological greedy pass.
//
// Rides are processed in (date, start time) order. Every driver is evaluated
// for each ride and the cheapest feasible one wins; on equal cost the driver
// listed first wins. A ride with no feasible driver is dropped. The pass is
// deterministic for a given input and cold resolver.
//
// Malformed input aborts the run with an error wrapping domain.ErrInvalidInput.
// ctx is checked between rides, so a cancelled run never leaves a ride half
// committed.
func AssignRides(
	ctx context.Context,
	drivers []domain.Driver,
	rides []domain.Ride,
	resolver DistanceResolver,
	opts EngineOptions,
) (_ domain.AssignmentResult, err error) {
	defer obs.Time(ctx, "services.AssignRides")(&err)

	if err := domain.ValidateFleet(drivers, rides); err != nil {
		return domain.AssignmentResult{}, fmt.Errorf("assign rides: %w", err)
	}

	opts = opts.withDefaults()
	filter := ConstraintFilter{Distances: resolver, SpeedKmh: opts.SpeedKmh}
	model := CostModel{HourlyRate: opts.HourlyRate}

	// Stable so rides sharing a slot keep their input order.
	ordered := slices.Clone(rides)
	slices.SortStableFunc(ordered, domain.Ride.Compare)

	state := make([]driverState, len(drivers))
	for i, d := range drivers {
		state[i] = driverState{
			avail:  domain.NewAvailability(d),
			ledger: domain.Ledger{},
		}
	}

	rideCosts := make(map[string]float64)
	total := 0.0

	for _, ride := range ordered {
		if err := ctx.Err(); err != nil {
			return domain.AssignmentResult{}, fmt.Errorf("assign rides: before ride %q: %w", ride.ID, err)
		}

		candidates := evaluateRide(ctx, drivers, state, ride, filter, model, opts.Workers)

		best := cheapest(candidates)
		if best < 0 {
			if opts.LogDrops {
				log.Printf("op=assign.drop ride_id=%s date=%s start=%s rejections=%s",
					ride.ID, ride.Date, ride.Start, summarizeRejections(candidates))
			}
			continue
		}

		// Commit the winner; nothing else is mutated for this ride.
		s := &state[best]
		s.avail = domain.Availability{
			Position:  ride.EndCoords,
			BusyUntil: ride.End,
			Date:      ride.Date,
		}
		s.ledger.Add(ride.Date, ride.Duration())
		s.rides = append(s.rides, domain.ScheduledRide{
			RideID:     ride.ID,
			Date:       ride.Date,
			Start:      ride.Start,
			End:        ride.End,
			EmptyLegKm: candidates[best].verdict.EmptyLegKm,
			RideKm:     candidates[best].rideKm,
			Cost:       candidates[best].cost,
		})

		rideCosts[ride.ID] = candidates[best].cost
		total += candidates[best].cost
	}

	out := domain.AssignmentResult{
		Assignments: make([]domain.Assignment, 0, len(drivers)),
		TotalCost:   roundCents(total),
		RideCosts:   rideCosts,
		Schedules:   make([]domain.DriverSchedule, 0, len(drivers)),
	}
	for i, d := range drivers {
		if len(state[i].rides) == 0 {
			continue
		}
		ids := make([]string, 0, len(state[i].rides))
		for _, r := range state[i].rides {
			ids = append(ids, r.RideID)
		}
		out.Assignments = append(out.Assignments, domain.Assignment{
			DriverID: d.ID,
			RideIDs:  ids,
		})
		out.Schedules = append(out.Schedules, domain.DriverSchedule{
			DriverID: d.ID,
			Rides:    state[i].rides,
		})
	}

	return out, nil
}

// evaluateRide checks and prices every driver for ride. Results land at the
// driver's index and are only read after all workers finish.
func evaluateRide(
	ctx context.Context,
	drivers []domain.Driver,
	state []driverState,
	ride domain.Ride,
	filter ConstraintFilter,
	model CostModel,
	workers int,
) []candidate {
	out := make([]candidate, len(drivers))

	var g errgroup.Group
	g.SetLimit(workers)

	for i := range drivers {
		g.Go(func() error {
			d := drivers[i]
			avail := state[i].avail.On(d, ride.Date)

			v := filter.Check(ctx, d, avail, state[i].ledger, ride)
			if !v.Feasible {
				out[i] = candidate{verdict: v}
				return nil
			}

			rideKm := filter.Distances.Resolve(ctx, ride.StartCoords, ride.EndCoords)
			out[i] = candidate{
				verdict: v,
				rideKm:  rideKm,
				cost:    model.Cost(d, ride, v.EmptyLegKm, rideKm),
			}
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	return out
}

// cheapest returns the index of the first feasible candidate with the lowest
// cost, or -1 when none is feasible.
func cheapest(candidates []candidate) int {
	best := -1
	for i, c := range candidates {
		if !c.verdict.Feasible {
			continue
		}
		if best < 0 || c.cost < candidates[best].cost {
			best = i
		}
	}
	return best
}

func summarizeRejections(candidates []candidate) string {
	if len(candidates) == 0 {
		return "no_drivers"
	}

	counts := make(map[Rejection]int)
	for _, c := range candidates {
		counts[c.verdict.Reason]++
	}

	parts := make([]string, 0, len(counts))
	for reason, n := range counts {
		parts = append(parts, fmt.Sprintf("%s:%d", reason, n))
	}
	sort.Strings(parts)

	return strings.Join(parts, ",")
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
