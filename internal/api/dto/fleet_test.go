package dto

import (
	"encoding/json"
	"errors"
	"ride-assignment-service/internal/domain"
	"testing"
)

func TestDecodeDriverRecord(t *testing.T) {
	raw := `{
		"driverId": 17,
		"city": "Tel Aviv",
		"city_coords": [32.0853, 34.7818],
		"numberOfSeats": 4,
		"fuelCost": 0.6,
		"shiftStart": "08:00",
		"shiftEnd": "20:00",
		"maxDailyWorkHours": 1.5,
		"blockedAddresses": ["Airport"]
	}`

	var rec DriverRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	d, err := rec.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}

	if d.ID != "17" {
		t.Errorf("ID = %q, want 17", d.ID)
	}
	if d.Home.Lat != 32.0853 || d.Home.Lon != 34.7818 {
		t.Errorf("Home = %+v, coordinates must be read as [lat, lon]", d.Home)
	}
	if d.Shift == nil || d.Shift.Start.String() != "08:00" || d.Shift.End.String() != "20:00" {
		t.Errorf("Shift = %+v", d.Shift)
	}
	if d.MaxDailyHours == nil || *d.MaxDailyHours != 1.5 {
		t.Errorf("MaxDailyHours = %v, want 1.5", d.MaxDailyHours)
	}
}

func TestDriverRecordOptionalFields(t *testing.T) {
	rec := DriverRecord{DriverID: "d1", CityCoords: []float64{32, 34.8}, NumberOfSeats: 3, FuelCost: 1}

	d, err := rec.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	if d.Shift != nil || d.MaxDailyHours != nil || len(d.Blocked) != 0 {
		t.Fatalf("optional fields should stay unset: %+v", d)
	}
}

func TestDriverRecordRejectsMalformed(t *testing.T) {
	zero := 0.0
	tests := map[string]DriverRecord{
		"half shift":     {DriverID: "d", CityCoords: []float64{32, 34}, NumberOfSeats: 1, ShiftStart: "08:00"},
		"bad clock":      {DriverID: "d", CityCoords: []float64{32, 34}, NumberOfSeats: 1, ShiftStart: "8am", ShiftEnd: "17:00"},
		"missing coords": {DriverID: "d", NumberOfSeats: 1},
		"zero cap":       {DriverID: "d", CityCoords: []float64{32, 34}, NumberOfSeats: 1, MaxDailyWorkHours: &zero},
		"no seats":       {DriverID: "d", CityCoords: []float64{32, 34}},
	}

	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := rec.ToDomain(); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDecodeRideRecord(t *testing.T) {
	raw := `{
		"_id": "64f1c0",
		"date": "2025-01-01",
		"startTime": "09:00",
		"endTime": "09:30",
		"startPoint": "Dizengoff Center",
		"startPoint_coords": [32.0754, 34.7745],
		"endPoint": "Azrieli Mall",
		"endPoint_coords": [32.0741, 34.7922],
		"numberOfSeats": 2
	}`

	var rec RideRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r, err := rec.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	if r.ID != "64f1c0" || r.Duration() != 30 || r.EndCoords.Lon != 34.7922 {
		t.Fatalf("ride = %+v", r)
	}
}

func TestRideRecordRejectsInvertedTimes(t *testing.T) {
	rec := RideRecord{
		ID: "r", Date: "2025-01-01", StartTime: "23:30", EndTime: "00:15",
		StartPointCoords: []float64{32, 34}, EndPointCoords: []float64{32, 34}, NumberOfSeats: 1,
	}
	if _, err := rec.ToDomain(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestFlexibleIDRejectsObjects(t *testing.T) {
	var id FlexibleID
	if err := json.Unmarshal([]byte(`{"a":1}`), &id); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestRecordRoundTripThroughDomain(t *testing.T) {
	rec := DriverRecord{
		DriverID: "d1", City: "Haifa", CityCoords: []float64{32.79, 34.99},
		NumberOfSeats: 4, FuelCost: 0.7, ShiftStart: "06:00", ShiftEnd: "14:00",
	}
	d, err := rec.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	back := DriverRecordFrom(d)
	if back.ShiftStart != "06:00" || back.ShiftEnd != "14:00" || back.CityCoords[0] != 32.79 {
		t.Fatalf("DriverRecordFrom = %+v", back)
	}
}

func TestNewAssignmentResponseEncodesEmptyList(t *testing.T) {
	b, err := json.Marshal(NewAssignmentResponse(domain.AssignmentResult{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"assignments":[],"totalCost":0}` {
		t.Fatalf("json = %s", b)
	}
}

func TestNewAssignmentReport(t *testing.T) {
	res := domain.AssignmentResult{
		Assignments: []domain.Assignment{{DriverID: "d1", RideIDs: []string{"r1"}}},
		TotalCost:   21.5,
		Schedules: []domain.DriverSchedule{{
			DriverID: "d1",
			Rides: []domain.ScheduledRide{{
				RideID: "r1", Date: "2025-03-01",
				Start: domain.MustParseClock("09:00"), End: domain.MustParseClock("09:30"),
				EmptyLegKm: 1.23456, RideKm: 10, Cost: 21.4999,
			}},
		}},
	}
	rides := []domain.Ride{{ID: "r1"}, {ID: "r2"}}

	report := NewAssignmentReport(res, rides, ResolverStatsResponse{Fallbacks: 2})

	if len(report.DroppedRides) != 1 || report.DroppedRides[0] != "r2" {
		t.Fatalf("droppedRides = %v, want [r2]", report.DroppedRides)
	}
	if len(report.Schedules) != 1 || len(report.Schedules[0].Rides) != 1 {
		t.Fatalf("schedules = %+v", report.Schedules)
	}
	s := report.Schedules[0]
	if s.Rides[0].StartTime != "09:00" || s.Rides[0].EmptyLegKm != 1.235 || s.Rides[0].Cost != 21.5 {
		t.Fatalf("scheduled ride = %+v", s.Rides[0])
	}
	if s.TotalKm != 11.235 || s.TotalCost != 21.5 {
		t.Fatalf("totals = %v km, %v cost", s.TotalKm, s.TotalCost)
	}
	if report.Resolver.Fallbacks != 2 {
		t.Fatalf("resolver stats not carried: %+v", report.Resolver)
	}
}

func TestDriverRecordKeepsFractionalCap(t *testing.T) {
	for _, hours := range []float64{1.01, 0.005} {
		h := hours
		rec := DriverRecord{DriverID: "d1", CityCoords: []float64{32, 34.8}, NumberOfSeats: 3, FuelCost: 1, MaxDailyWorkHours: &h}

		d, err := rec.ToDomain()
		if err != nil {
			t.Fatalf("cap %v rejected: %v", hours, err)
		}
		limit, ok := d.DailyCapMinutes()
		if !ok || limit != hours*60 {
			t.Fatalf("cap %v: DailyCapMinutes = %v, %v; want %v", hours, limit, ok, hours*60)
		}
		if back := DriverRecordFrom(d); back.MaxDailyWorkHours == nil || *back.MaxDailyWorkHours != hours {
			t.Fatalf("cap %v did not survive the round trip: %v", hours, back.MaxDailyWorkHours)
		}
	}
}
