package values

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/temporal"
)

// PlainDateTime is a calendar date paired with a wall-clock time, with no
// zone attached.
type PlainDateTime struct {
	date PlainDate
	time PlainTime
}

// NewPlainDateTime constructs a date-time from calendar and wall-clock
// fields.
func NewPlainDateTime(calendarID string, year, month, day, hour, minute, second, milli, micro, nano int, overflow temporal.Overflow) (PlainDateTime, error) {
	d, err := NewPlainDate(calendarID, year, month, day, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	t, err := NewPlainTime(hour, minute, second, milli, micro, nano, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: d, time: t}, nil
}

// Date returns the date half.
func (dt PlainDateTime) Date() PlainDate { return dt.date }

// Time returns the time half.
func (dt PlainDateTime) Time() PlainTime { return dt.time }

// Calendar returns the date's calendar.
func (dt PlainDateTime) Calendar() calendar.Calendar { return dt.date.cal }

// WithPlainTime replaces the time half.
func (dt PlainDateTime) WithPlainTime(t PlainTime) PlainDateTime {
	return PlainDateTime{date: dt.date, time: t}
}

// WithPlainDate replaces the date half.
func (dt PlainDateTime) WithPlainDate(d PlainDate) PlainDateTime {
	return PlainDateTime{date: d, time: dt.time}
}

// With replaces the present date and time fields and reconstructs.
func (dt PlainDateTime) With(date calendar.FieldInputs, time TimeFields, overflow temporal.Overflow) (PlainDateTime, error) {
	d, err := dt.date.With(date, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	t, err := dt.time.With(time, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: d, time: t}, nil
}

// Add moves the date-time by a duration: calendar units through the
// calendar, then the time portion with day carry.
func (dt PlainDateTime) Add(dur duration.Duration, overflow temporal.Overflow) (PlainDateTime, error) {
	epochDay, err := dt.date.cal.AddDate(dt.date.epochDay, dur.Years(), dur.Months(), dur.Weeks(), dur.Days(), overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	total := new(big.Int).SetInt64(dt.time.ns)
	total.Add(total, dur.TimeNanos())

	carry := new(big.Int)
	rem := new(big.Int)
	carry.QuoRem(total, big.NewInt(temporal.NanosPerDay), rem)
	if rem.Sign() < 0 {
		carry.Sub(carry, big.NewInt(1))
		rem.Add(rem, big.NewInt(temporal.NanosPerDay))
	}
	if !carry.IsInt64() {
		return PlainDateTime{}, temporal.NewRangeError("datetime.add", "duration out of range")
	}
	epochDay, err = addChecked("datetime.add", epochDay, carry.Int64())
	if err != nil {
		return PlainDateTime{}, err
	}
	if epochDay > calendar.MaxEpochDay || epochDay < -calendar.MaxEpochDay {
		return PlainDateTime{}, temporal.NewRangeError("datetime.add",
			"result is out of the supported date range")
	}
	return PlainDateTime{
		date: newPlainDate(dt.date.cal, epochDay),
		time: PlainTime{ns: rem.Int64()},
	}, nil
}

// Subtract moves the date-time backward by the duration.
func (dt PlainDateTime) Subtract(dur duration.Duration, overflow temporal.Overflow) (PlainDateTime, error) {
	return dt.Add(dur.Negated(), overflow)
}

// position is the date-time's offset from the epoch in nanoseconds,
// treating every day as exactly 24 hours.
func (dt PlainDateTime) position() *big.Int {
	pos := new(big.Int).SetInt64(dt.date.epochDay)
	pos.Mul(pos, big.NewInt(temporal.NanosPerDay))
	return pos.Add(pos, big.NewInt(dt.time.ns))
}

// Until returns the difference from dt to other, balanced to the
// requested largest unit (default days). Both must share a calendar.
func (dt PlainDateTime) Until(other PlainDateTime, opts DifferenceOptions) (duration.Duration, error) {
	const op = "datetime.until"
	if dt.date.cal.ID() != other.date.cal.ID() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"cannot subtract date-times in calendars %s and %s", other.date.cal.ID(), dt.date.cal.ID())
	}
	largest := opts.LargestUnit
	if largest == temporal.UnitAuto {
		largest = temporal.UnitDay
	}

	anchor := duration.NewAnchor(dt.date.cal, dt.date.epochDay, dt.time.ns)
	var dur duration.Duration
	var err error
	if largest.IsTimeUnit() {
		dur, err = duration.FromNanos(new(big.Int).Sub(other.position(), dt.position()), largest)
	} else {
		dur, err = duration.UntilAnchored(anchor, other.position(), largest)
	}
	if err != nil {
		return duration.Duration{}, err
	}
	if !opts.wantsRounding() {
		return dur, nil
	}
	return dur.Round(duration.RoundOptions{
		LargestUnit:  largest,
		SmallestUnit: opts.SmallestUnit,
		Increment:    opts.Increment,
		Mode:         opts.Mode,
		RelativeTo:   anchor,
	})
}

// Since returns the difference from other to dt.
func (dt PlainDateTime) Since(other PlainDateTime, opts DifferenceOptions) (duration.Duration, error) {
	return other.Until(dt, opts)
}

// Round rounds the time half to a multiple of increment units, carrying
// into the date. Unit day rounds to the nearest midnight and admits only
// increment 1.
func (dt PlainDateTime) Round(unit temporal.Unit, increment int64, mode temporal.RoundingMode) (PlainDateTime, error) {
	const op = "datetime.round"
	if increment == 0 {
		increment = 1
	}
	switch {
	case unit == temporal.UnitDay:
		if increment != 1 {
			return PlainDateTime{}, temporal.NewRangeError(op,
				"increment must be 1 for day rounding")
		}
	case unit.IsTimeUnit():
		if err := temporal.ValidateIncrement(op, unit, increment); err != nil {
			return PlainDateTime{}, err
		}
	default:
		return PlainDateTime{}, temporal.NewRangeError(op,
			"unit %s is not usable for date-time rounding", unit)
	}

	rounded := temporal.RoundInt64ToIncrement(dt.time.ns, increment*temporal.NanosPer(unit), mode)
	carry := floorDiv(rounded, temporal.NanosPerDay)
	ns := floorMod(rounded, temporal.NanosPerDay)
	epochDay, err := addChecked(op, dt.date.epochDay, carry)
	if err != nil {
		return PlainDateTime{}, err
	}
	if epochDay > calendar.MaxEpochDay || epochDay < -calendar.MaxEpochDay {
		return PlainDateTime{}, temporal.NewRangeError(op,
			"result is out of the supported date range")
	}
	return PlainDateTime{
		date: newPlainDate(dt.date.cal, epochDay),
		time: PlainTime{ns: ns},
	}, nil
}

// CompareDateTimes orders two date-times on the timeline.
func CompareDateTimes(a, b PlainDateTime) int {
	if c := CompareDates(a.date, b.date); c != 0 {
		return c
	}
	return CompareTimes(a.time, b.time)
}

// Equal reports whether two date-times name the same day and nanosecond
// in the same calendar.
func (dt PlainDateTime) Equal(other PlainDateTime) bool {
	return dt.date.Equal(other.date) && dt.time.Equal(other.time)
}
