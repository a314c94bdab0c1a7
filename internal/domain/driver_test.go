package domain

import (
	"errors"
	"testing"
)

func validDriver() Driver {
	return Driver{ID: "d1", Home: Coordinates{Lat: 32, Lon: 34.8}, Seats: 4, FuelCost: 0.5}
}

func validRide() Ride {
	return Ride{
		ID:          "r1",
		Date:        "2025-01-01",
		Start:       MustParseClock("09:00"),
		End:         MustParseClock("09:30"),
		StartCoords: Coordinates{Lat: 32, Lon: 34.8},
		EndCoords:   Coordinates{Lat: 32.1, Lon: 34.8},
		Seats:       2,
	}
}

func TestDriverBlockedMatch(t *testing.T) {
	d := validDriver()
	d.Blocked = []string{"", "  ", "Haifa"}

	if m, ok := d.BlockedMatch("Downtown HAIFA port"); !ok || m != "Haifa" {
		t.Fatalf("BlockedMatch = %q, %v; want Haifa, true", m, ok)
	}
	if _, ok := d.BlockedMatch("Tel Aviv"); ok {
		t.Fatalf("empty entries must not match every location")
	}

	d.Blocked = nil
	if _, ok := d.BlockedMatch("Haifa"); ok {
		t.Fatalf("no blocked list should match nothing")
	}
}

func TestDriverDayStart(t *testing.T) {
	d := validDriver()
	if d.DayStart() != Midnight {
		t.Fatalf("driver without shift should start at midnight, got %s", d.DayStart())
	}
	d.Shift = &Shift{Start: MustParseClock("07:00"), End: MustParseClock("15:00")}
	if d.DayStart() != MustParseClock("07:00") {
		t.Fatalf("DayStart = %s, want 07:00", d.DayStart())
	}
}

func TestDriverValidate(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name   string
		mutate func(*Driver)
	}{
		{"empty id", func(d *Driver) { d.ID = " " }},
		{"no seats", func(d *Driver) { d.Seats = 0 }},
		{"negative fuel", func(d *Driver) { d.FuelCost = -1 }},
		{"bad home", func(d *Driver) { d.Home.Lat = 100 }},
		{"inverted shift", func(d *Driver) {
			d.Shift = &Shift{Start: MustParseClock("15:00"), End: MustParseClock("07:00")}
		}},
		{"zero cap", func(d *Driver) { d.MaxDailyHours = &zero }},
	}

	if err := validDriver().Validate(); err != nil {
		t.Fatalf("valid driver rejected: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDriver()
			tc.mutate(&d)
			err := d.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRideValidate(t *testing.T) {
	if err := validRide().Validate(); err != nil {
		t.Fatalf("valid ride rejected: %v", err)
	}

	r := validRide()
	r.End = MustParseClock("08:00")
	if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted ride: got %v, want ErrInvalidInput", err)
	}

	r = validRide()
	r.Date = "01/01/2025"
	if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date: got %v, want ErrInvalidInput", err)
	}

	r = validRide()
	r.Seats = 0
	if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero seats: got %v, want ErrInvalidInput", err)
	}
}

func TestValidateFleetRejectsDuplicates(t *testing.T) {
	if err := ValidateFleet([]Driver{validDriver(), validDriver()}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate drivers: got %v", err)
	}
	if err := ValidateFleet(nil, []Ride{validRide(), validRide()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate rides: got %v", err)
	}
	if err := ValidateFleet([]Driver{validDriver()}, []Ride{validRide()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAvailabilityOnNewDateResets(t *testing.T) {
	d := validDriver()
	d.Shift = &Shift{Start: MustParseClock("06:00"), End: MustParseClock("20:00")}

	a := NewAvailability(d).On(d, "2025-01-01")
	a.BusyUntil = MustParseClock("18:00")
	a.Position = Coordinates{Lat: 31, Lon: 35}

	same := a.On(d, "2025-01-01")
	if same != a {
		t.Fatalf("same date should keep state, got %+v", same)
	}

	next := a.On(d, "2025-01-02")
	if next.BusyUntil != MustParseClock("06:00") || next.Position != d.Home || next.Date != "2025-01-02" {
		t.Fatalf("next date should reset to shift start at home, got %+v", next)
	}
}

func TestRideCompare(t *testing.T) {
	early := validRide()
	late := validRide()
	late.Start = MustParseClock("10:00")
	nextDay := validRide()
	nextDay.Date = "2025-01-02"
	nextDay.Start = MustParseClock("06:00")

	if early.Compare(late) >= 0 || late.Compare(early) <= 0 {
		t.Fatalf("same date should order by start time")
	}
	if late.Compare(nextDay) >= 0 {
		t.Fatalf("date must dominate start time")
	}
	if early.Compare(validRide()) != 0 {
		t.Fatalf("identical slots should compare equal")
	}
}

func TestDailyCapMinutes(t *testing.T) {
	d := validDriver()
	if _, ok := d.DailyCapMinutes(); ok {
		t.Fatalf("uncapped driver reported a cap")
	}

	h := 1.01
	d.MaxDailyHours = &h
	if got, ok := d.DailyCapMinutes(); !ok || got != 1.01*60 {
		t.Fatalf("DailyCapMinutes = %v, %v; want %v", got, ok, 1.01*60)
	}
}
