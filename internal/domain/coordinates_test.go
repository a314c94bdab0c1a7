package domain

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 0, Lon: 1}

	// One degree of arc on the equator.
	want := 6371.0 * math.Pi / 180
	if got := HaversineKm(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("HaversineKm = %v, want %v", got, want)
	}

	if got := HaversineKm(a, a); got != 0 {
		t.Fatalf("distance to self = %v, want 0", got)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	tlv := Coordinates{Lat: 32.0853, Lon: 34.7818}
	jlm := Coordinates{Lat: 31.7683, Lon: 35.2137}

	ab := HaversineKm(tlv, jlm)
	ba := HaversineKm(jlm, tlv)
	if ab != ba {
		t.Fatalf("asymmetric distance: %v vs %v", ab, ba)
	}
	// Tel Aviv to Jerusalem is roughly 54 km as the crow flies.
	if ab < 50 || ab > 58 {
		t.Fatalf("Tel Aviv -> Jerusalem = %v km, want ~54", ab)
	}
}

func TestHaversineKmAntipodal(t *testing.T) {
	got := HaversineKm(Coordinates{Lat: 0, Lon: 0}, Coordinates{Lat: 0, Lon: 180})
	if math.IsNaN(got) {
		t.Fatalf("antipodal distance is NaN")
	}
	if want := math.Pi * 6371; math.Abs(got-want) > 1e-6 {
		t.Fatalf("antipodal = %v, want %v", got, want)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	if err := (Coordinates{Lat: 32, Lon: 34.8}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []Coordinates{{Lat: 91}, {Lat: -91}, {Lon: 181}, {Lat: math.NaN()}} {
		if err := c.Validate(); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}
