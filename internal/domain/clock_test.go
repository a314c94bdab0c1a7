package domain

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"9:05", 545},
		{"23:59", 1439},
	}

	for _, tc := range tests {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) unexpected error: %v", tc.in, err)
		}
		if got.Minutes() != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got.Minutes(), tc.want)
		}
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "12:5", "ab:cd", "123:00", "-1:30"} {
		_, err := ParseClock(in)
		if err == nil {
			t.Errorf("ParseClock(%q) expected error", in)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseClock(%q) error %v does not wrap ErrInvalidInput", in, err)
		}
	}
}

func TestClockArithmetic(t *testing.T) {
	nine := MustParseClock("09:00")
	half := MustParseClock("09:30")

	if d := Diff(nine, half); d != 30 {
		t.Fatalf("Diff = %d, want 30", d)
	}
	if d := Diff(half, nine); d != -30 {
		t.Fatalf("Diff misordered = %d, want -30", d)
	}
	if got := nine.Add(30); got != half {
		t.Fatalf("Add(30) = %s, want %s", got, half)
	}
	if got := nine.Add(90).String(); got != "10:30" {
		t.Fatalf("Add(90) = %s, want 10:30", got)
	}
	if !half.After(nine) || nine.After(half) || nine.After(nine) {
		t.Fatalf("After ordering wrong")
	}
	if !nine.Before(half) || nine.Before(nine) {
		t.Fatalf("Before ordering wrong")
	}
}

func TestClockBetweenIsInclusive(t *testing.T) {
	lo := MustParseClock("08:00")
	hi := MustParseClock("16:00")

	if !lo.Between(lo, hi) {
		t.Errorf("lower bound should be in range")
	}
	if !hi.Between(lo, hi) {
		t.Errorf("upper bound should be in range")
	}
	if MustParseClock("07:59").Between(lo, hi) {
		t.Errorf("07:59 should be out of range")
	}
	if MustParseClock("16:01").Between(lo, hi) {
		t.Errorf("16:01 should be out of range")
	}
}

func TestClockPastMidnightFormats(t *testing.T) {
	late := MustParseClock("23:30").Add(45)
	if late.String() != "24:15" {
		t.Fatalf("String = %s, want 24:15", late)
	}
	if !late.After(MustParseClock("23:59")) {
		t.Fatalf("24:15 should compare after 23:59")
	}
}
