package temporal

import "fmt"

// Unit identifies a date or time unit. Units are ordered from largest
// (UnitYear) to smallest (UnitNanosecond); the zero value UnitAuto stands
// for "derive from context" and is only legal where an operation documents
// a default.
type Unit int

const (
	UnitAuto Unit = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

// Canonical balancing order: years -> nanoseconds. Slices of units are
// always iterated in this order so that "largest nonzero unit" is
// well-defined even when several units are simultaneously nonzero.
var unitNames = map[Unit]string{
	UnitAuto:        "auto",
	UnitYear:        "year",
	UnitMonth:       "month",
	UnitWeek:        "week",
	UnitDay:         "day",
	UnitHour:        "hour",
	UnitMinute:      "minute",
	UnitSecond:      "second",
	UnitMillisecond: "millisecond",
	UnitMicrosecond: "microsecond",
	UnitNanosecond:  "nanosecond",
}

// String returns the singular unit name.
func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit converts a unit name to a Unit. Both singular and plural
// spellings are accepted ("month", "months"). Unknown names are rejected
// with a TypeError-kind error; "auto" is only accepted when allowAuto is
// set.
func ParseUnit(op, s string, allowAuto bool) (Unit, error) {
	name := s
	if n := len(name); n > 1 && name[n-1] == 's' {
		name = name[:n-1]
	}
	for u, canonical := range unitNames {
		if canonical == name || canonical == s {
			if u == UnitAuto && !allowAuto {
				return UnitAuto, NewTypeError(op, "unit %q is not valid here", s)
			}
			return u, nil
		}
	}
	return UnitAuto, NewTypeError(op, "unrecognized unit %q", s)
}

// Larger reports whether u is a strictly larger unit than v.
// UnitAuto compares larger than everything; callers must resolve auto
// before ordering matters.
func (u Unit) Larger(v Unit) bool { return u < v }

// Smaller reports whether u is a strictly smaller unit than v.
func (u Unit) Smaller(v Unit) bool { return u > v }

// IsCalendarUnit reports whether u has calendar-dependent length
// (year, month, or week).
func (u Unit) IsCalendarUnit() bool {
	return u == UnitYear || u == UnitMonth || u == UnitWeek
}

// IsDateUnit reports whether u is a date unit (year, month, week, or day).
func (u Unit) IsDateUnit() bool { return u.IsCalendarUnit() || u == UnitDay }

// IsTimeUnit reports whether u is a time-of-day unit (hour..nanosecond).
func (u Unit) IsTimeUnit() bool { return u >= UnitHour && u <= UnitNanosecond }

// Nanoseconds per fixed-length unit. Days are treated as exactly 24 hours
// here; calendar-aware paths never consult this table for days without an
// anchor saying so.
const (
	nsPerMicrosecond = int64(1_000)
	nsPerMillisecond = int64(1_000_000)
	nsPerSecond      = int64(1_000_000_000)
	nsPerMinute      = 60 * nsPerSecond
	nsPerHour        = 60 * nsPerMinute
	nsPerDay         = 24 * nsPerHour
)

// NanosPerDay is the fixed nanosecond length of a 24-hour day.
const NanosPerDay = nsPerDay

// NanosPer returns the nanosecond length of a fixed-length unit
// (day..nanosecond). It panics for calendar units, whose length is
// calendar-dependent; reaching that panic is an engine bug, not an input
// error.
func NanosPer(u Unit) int64 {
	switch u {
	case UnitDay:
		return nsPerDay
	case UnitHour:
		return nsPerHour
	case UnitMinute:
		return nsPerMinute
	case UnitSecond:
		return nsPerSecond
	case UnitMillisecond:
		return nsPerMillisecond
	case UnitMicrosecond:
		return nsPerMicrosecond
	case UnitNanosecond:
		return 1
	}
	panic(fmt.Sprintf("NanosPer called with calendar unit %s", u))
}

// maxIncrement gives the natural maximum for time-unit rounding
// increments: an increment must divide this value evenly and be strictly
// smaller than it.
var maxIncrement = map[Unit]int64{
	UnitHour:        24,
	UnitMinute:      60,
	UnitSecond:      60,
	UnitMillisecond: 1000,
	UnitMicrosecond: 1000,
	UnitNanosecond:  1000,
}

// ValidateIncrement checks a rounding increment against the smallest
// unit's natural maximum. Time units must evenly divide their maximum
// (7 is invalid for minutes); date units accept any positive increment.
func ValidateIncrement(op string, u Unit, increment int64) error {
	if increment < 1 {
		return NewRangeError(op, "rounding increment must be at least 1, got %d", increment)
	}
	max, ok := maxIncrement[u]
	if !ok {
		return nil // date unit
	}
	if increment >= max || max%increment != 0 {
		return NewRangeError(op, "increment %d does not evenly divide %d %ss", increment, max, u)
	}
	return nil
}
