package domain

// Availability is the mutable per-driver state owned by the assignment engine.
type Availability struct {
	Position  Coordinates
	BusyUntil Clock
	Date      string
}

// NewAvailability places the driver at home, free from the start of their day.
func NewAvailability(d Driver) Availability {
	return Availability{
		Position:  d.Home,
		BusyUntil: d.DayStart(),
	}
}

// On returns the state the driver is in when considered for a ride on date.
// A driver whose last activity was on an earlier date starts that date
// afresh from home.
func (a Availability) On(d Driver, date string) Availability {
	if a.Date == date {
		return a
	}
	fresh := NewAvailability(d)
	fresh.Date = date
	return fresh
}

// Ledger holds cumulative assigned-ride minutes per service date.
// Entries only grow.
type Ledger map[string]int

func (l Ledger) Minutes(date string) int { return l[date] }

func (l Ledger) Add(date string, minutes int) { l[date] += minutes }
