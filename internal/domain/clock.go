package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed in minutes after midnight.
//
// Parsed clocks are always within [00:00, 23:59]. Arithmetic may produce
// values past 24:00; those are only compared, never re-parsed, since rides
// do not span midnight.
type Clock int

// Midnight is the start of a service day.
const Midnight Clock = 0

// ParseClock parses a 24-hour "HH:MM" clock time.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM: %w", s, ErrInvalidInput)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("parse clock %q: invalid hour: %w", s, ErrInvalidInput)
	}

	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: invalid minute: %w", s, ErrInvalidInput)
	}

	return Clock(h*60 + m), nil
}

// MustParseClock is ParseClock for literals known to be valid.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns the offset from midnight.
func (c Clock) Minutes() int { return int(c) }

// Add returns c shifted by n minutes.
func (c Clock) Add(n int) Clock { return c + Clock(n) }

// After reports whether c is strictly later than other.
func (c Clock) After(other Clock) bool { return c > other }

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool { return c < other }

// Between reports whether lo <= c <= hi.
func (c Clock) Between(lo, hi Clock) bool { return c >= lo && c <= hi }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Diff returns end minus start in minutes. The result is negative when the
// two are misordered.
func Diff(start, end Clock) int { return int(end) - int(start) }
