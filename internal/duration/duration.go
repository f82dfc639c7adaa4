// Package duration implements the signed, multi-unit duration model:
// construction with the shared-sign invariant, calendar-relative
// balancing, unit rounding, totaling, and comparison.
//
// A duration carries ten fields, years down to nanoseconds. Fixed-length
// arithmetic treats a day as exactly 86,400e9 nanoseconds; whenever a
// calendar unit (year, month, week) has to stretch or shrink, the
// operation demands a relativeTo anchor and asks the anchor's calendar —
// converting 400 days into months walks the actual month lengths from the
// anchor, never a fixed count.
//
// The canonical balancing order is years -> nanoseconds: "largest nonzero
// unit" always means the first nonzero field in that order.
package duration

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/temporal"
)

// Fields is the ten-field record a Duration is built from. All nonzero
// fields must share one sign.
type Fields struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// unitOrder lists duration units in canonical balancing order.
var unitOrder = [...]temporal.Unit{
	temporal.UnitYear,
	temporal.UnitMonth,
	temporal.UnitWeek,
	temporal.UnitDay,
	temporal.UnitHour,
	temporal.UnitMinute,
	temporal.UnitSecond,
	temporal.UnitMillisecond,
	temporal.UnitMicrosecond,
	temporal.UnitNanosecond,
}

func (f *Fields) get(u temporal.Unit) int64 {
	switch u {
	case temporal.UnitYear:
		return f.Years
	case temporal.UnitMonth:
		return f.Months
	case temporal.UnitWeek:
		return f.Weeks
	case temporal.UnitDay:
		return f.Days
	case temporal.UnitHour:
		return f.Hours
	case temporal.UnitMinute:
		return f.Minutes
	case temporal.UnitSecond:
		return f.Seconds
	case temporal.UnitMillisecond:
		return f.Milliseconds
	case temporal.UnitMicrosecond:
		return f.Microseconds
	case temporal.UnitNanosecond:
		return f.Nanoseconds
	}
	panic("duration: not a duration unit")
}

func (f *Fields) set(u temporal.Unit, v int64) {
	switch u {
	case temporal.UnitYear:
		f.Years = v
	case temporal.UnitMonth:
		f.Months = v
	case temporal.UnitWeek:
		f.Weeks = v
	case temporal.UnitDay:
		f.Days = v
	case temporal.UnitHour:
		f.Hours = v
	case temporal.UnitMinute:
		f.Minutes = v
	case temporal.UnitSecond:
		f.Seconds = v
	case temporal.UnitMillisecond:
		f.Milliseconds = v
	case temporal.UnitMicrosecond:
		f.Microseconds = v
	case temporal.UnitNanosecond:
		f.Nanoseconds = v
	default:
		panic("duration: not a duration unit")
	}
}

// Duration is an immutable multi-unit span. The zero value is the blank
// duration.
type Duration struct {
	f    Fields
	sign int
}

// FromFields validates and constructs a Duration. Mixed-sign nonzero
// fields are rejected with a RangeError-kind error.
func FromFields(f Fields) (Duration, error) {
	sign := 0
	for _, u := range unitOrder {
		v := f.get(u)
		switch {
		case v == 0:
			continue
		case sign == 0:
			if v > 0 {
				sign = 1
			} else {
				sign = -1
			}
		case (v > 0) != (sign > 0):
			return Duration{}, temporal.NewRangeError("duration.FromFields",
				"mixed-sign duration fields (%d %ss against sign %+d)", v, u, sign)
		}
	}
	return Duration{f: f, sign: sign}, nil
}

// Zero returns the blank duration.
func Zero() Duration { return Duration{} }

// Fields returns a copy of the underlying ten fields.
func (d Duration) Fields() Fields { return d.f }

// Sign returns the common sign of all fields: -1, 0, or +1.
func (d Duration) Sign() int { return d.sign }

// IsZero reports whether d is blank.
func (d Duration) IsZero() bool { return d.sign == 0 }

// Years returns the years field.
func (d Duration) Years() int64 { return d.f.Years }

// Months returns the months field.
func (d Duration) Months() int64 { return d.f.Months }

// Weeks returns the weeks field.
func (d Duration) Weeks() int64 { return d.f.Weeks }

// Days returns the days field.
func (d Duration) Days() int64 { return d.f.Days }

// Hours returns the hours field.
func (d Duration) Hours() int64 { return d.f.Hours }

// Minutes returns the minutes field.
func (d Duration) Minutes() int64 { return d.f.Minutes }

// Seconds returns the seconds field.
func (d Duration) Seconds() int64 { return d.f.Seconds }

// Milliseconds returns the milliseconds field.
func (d Duration) Milliseconds() int64 { return d.f.Milliseconds }

// Microseconds returns the microseconds field.
func (d Duration) Microseconds() int64 { return d.f.Microseconds }

// Nanoseconds returns the nanoseconds field.
func (d Duration) Nanoseconds() int64 { return d.f.Nanoseconds }

// Negated returns d with every field negated.
func (d Duration) Negated() Duration {
	var n Fields
	for _, u := range unitOrder {
		n.set(u, -d.f.get(u))
	}
	return Duration{f: n, sign: -d.sign}
}

// Abs returns d with every field non-negative.
func (d Duration) Abs() Duration {
	if d.sign < 0 {
		return d.Negated()
	}
	return d
}

// HasCalendarUnits reports whether any of years, months, or weeks is
// nonzero.
func (d Duration) HasCalendarUnits() bool {
	return d.f.Years != 0 || d.f.Months != 0 || d.f.Weeks != 0
}

// HasDateUnits reports whether any date field (years..days) is nonzero.
func (d Duration) HasDateUnits() bool {
	return d.HasCalendarUnits() || d.f.Days != 0
}

// LargestUnit returns the largest unit with a nonzero field in canonical
// order, or UnitNanosecond for a blank duration.
func (d Duration) LargestUnit() temporal.Unit {
	for _, u := range unitOrder {
		if d.f.get(u) != 0 {
			return u
		}
	}
	return temporal.UnitNanosecond
}

var bigNsPerSecond = big.NewInt(1_000_000_000)

// TimeNanos returns the total of the time fields (hours..nanoseconds) in
// nanoseconds. Days are excluded.
func (d Duration) TimeNanos() *big.Int {
	total := new(big.Int)
	var tmp big.Int
	for _, u := range unitOrder[4:] {
		tmp.SetInt64(d.f.get(u))
		tmp.Mul(&tmp, big.NewInt(temporal.NanosPer(u)))
		total.Add(total, &tmp)
	}
	return total
}

// fixedNanos returns the total span in nanoseconds treating days as
// exactly 24 hours. Calendar units must be zero; callers check.
func (d Duration) fixedNanos() *big.Int {
	total := d.TimeNanos()
	days := new(big.Int).SetInt64(d.f.Days)
	days.Mul(days, big.NewInt(temporal.NanosPerDay))
	return total.Add(total, days)
}

// FromNanos balances a nanosecond total into a duration whose largest
// populated unit is largestUnit, treating days as exactly 24 hours.
// largestUnit must be day or smaller.
func FromNanos(totalNs *big.Int, largestUnit temporal.Unit) (Duration, error) {
	if largestUnit.IsCalendarUnit() || largestUnit == temporal.UnitAuto {
		return Duration{}, temporal.NewRangeError("duration.FromNanos",
			"largest unit %s requires calendar arithmetic", largestUnit)
	}
	f, err := balanceFixed(totalNs, largestUnit)
	if err != nil {
		return Duration{}, err
	}
	return FromFields(f)
}

// balanceFixed distributes a nanosecond total into fields from
// largestUnit down to nanoseconds, treating days as exactly 24 hours.
// largestUnit must be day or smaller.
func balanceFixed(totalNs *big.Int, largestUnit temporal.Unit) (Fields, error) {
	var f Fields
	rest := new(big.Int).Set(totalNs)
	started := false
	for _, u := range unitOrder[3:] {
		if u.Larger(largestUnit) && !started {
			continue
		}
		started = true
		if u == temporal.UnitNanosecond {
			if !rest.IsInt64() {
				return Fields{}, temporal.NewRangeError("duration.balance", "duration out of range")
			}
			f.Nanoseconds = rest.Int64()
			break
		}
		unitNs := big.NewInt(temporal.NanosPer(u))
		q := new(big.Int)
		q.QuoRem(rest, unitNs, rest)
		if !q.IsInt64() {
			return Fields{}, temporal.NewRangeError("duration.balance", "duration out of range")
		}
		f.set(u, q.Int64())
	}
	return f, nil
}
