package dto

import (
	"math"
	"ride-assignment-service/internal/domain"
)

type AssignmentRequest struct {
	Drivers []DriverRecord `json:"drivers"`
	Rides   []RideRecord   `json:"rides"`
}

type AssignmentEntry struct {
	DriverID string   `json:"driverId"`
	RideIDs  []string `json:"rideIds"`
}

type AssignmentResponse struct {
	Assignments []AssignmentEntry `json:"assignments"`
	TotalCost   float64           `json:"totalCost"`
}

type ResolverStatsResponse struct {
	RoutedQueries  int64 `json:"routedQueries"`
	CacheHits      int64 `json:"cacheHits"`
	StoreHits      int64 `json:"storeHits"`
	ThresholdSkips int64 `json:"thresholdSkips"`
	Fallbacks      int64 `json:"fallbacks"`
}

type ScheduledRideResponse struct {
	RideID     string  `json:"rideId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	EmptyLegKm float64 `json:"emptyLegKm"`
	RideKm     float64 `json:"rideKm"`
	Cost       float64 `json:"cost"`
}

type DriverScheduleResponse struct {
	DriverID  string                  `json:"driverId"`
	Rides     []ScheduledRideResponse `json:"rides"`
	TotalKm   float64                 `json:"totalKm"`
	TotalCost float64                 `json:"totalCost"`
}

// AssignmentReport extends the plain response with run diagnostics.
type AssignmentReport struct {
	AssignmentResponse
	Schedules    []DriverScheduleResponse `json:"schedules"`
	DroppedRides []string                 `json:"droppedRides"`
	Resolver     ResolverStatsResponse    `json:"resolver"`
}

// NewAssignmentReport builds the diagnostic response for a run over rides.
func NewAssignmentReport(res domain.AssignmentResult, rides []domain.Ride, stats ResolverStatsResponse) AssignmentReport {
	report := AssignmentReport{
		AssignmentResponse: NewAssignmentResponse(res),
		Schedules:          make([]DriverScheduleResponse, 0, len(res.Schedules)),
		DroppedRides:       DroppedRideIDs(res, rides),
		Resolver:           stats,
	}

	for _, s := range res.Schedules {
		entry := DriverScheduleResponse{
			DriverID:  s.DriverID,
			Rides:     make([]ScheduledRideResponse, 0, len(s.Rides)),
			TotalKm:   roundTo(s.TotalKm(), 3),
			TotalCost: roundTo(s.TotalCost(), 2),
		}
		for _, r := range s.Rides {
			entry.Rides = append(entry.Rides, ScheduledRideResponse{
				RideID:     r.RideID,
				Date:       r.Date,
				StartTime:  r.Start.String(),
				EndTime:    r.End.String(),
				EmptyLegKm: roundTo(r.EmptyLegKm, 3),
				RideKm:     roundTo(r.RideKm, 3),
				Cost:       roundTo(r.Cost, 2),
			})
		}
		report.Schedules = append(report.Schedules, entry)
	}

	return report
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func NewAssignmentResponse(res domain.AssignmentResult) AssignmentResponse {
	out := AssignmentResponse{
		Assignments: make([]AssignmentEntry, 0, len(res.Assignments)),
		TotalCost:   res.TotalCost,
	}
	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, AssignmentEntry{
			DriverID: a.DriverID,
			RideIDs:  append([]string{}, a.RideIDs...),
		})
	}
	return out
}

// DroppedRideIDs lists, in input order, the rides that no driver accepted.
func DroppedRideIDs(res domain.AssignmentResult, rides []domain.Ride) []string {
	assigned := make(map[string]struct{}, res.AssignedRides())
	for _, a := range res.Assignments {
		for _, id := range a.RideIDs {
			assigned[id] = struct{}{}
		}
	}

	dropped := make([]string, 0)
	for _, r := range rides {
		if _, ok := assigned[r.ID]; !ok {
			dropped = append(dropped, r.ID)
		}
	}
	return dropped
}

// ListDriversResponse and ListRidesResponse echo the configured fleet.
type ListDriversResponse struct {
	Drivers []DriverRecord `json:"drivers"`
}

type ListRidesResponse struct {
	Rides []RideRecord `json:"rides"`
}
