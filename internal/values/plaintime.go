package values

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/temporal"
)

// PlainTime is a wall-clock time of day at nanosecond precision, with no
// date, calendar, or zone attached. The zero value is midnight.
type PlainTime struct {
	ns int64 // nanosecond of day, [0, NanosPerDay)
}

// TimeFields carries partially specified wall-clock fields. Present
// fields have their Has flag set.
type TimeFields struct {
	Hour    int
	HasHour bool

	Minute    int
	HasMinute bool

	Second    int
	HasSecond bool

	Millisecond    int
	HasMillisecond bool

	Microsecond    int
	HasMicrosecond bool

	Nanosecond    int
	HasNanosecond bool
}

func clampTimeField(op, name string, v, max int, overflow temporal.Overflow) (int, error) {
	if v >= 0 && v <= max {
		return v, nil
	}
	if overflow == temporal.OverflowReject {
		return 0, temporal.NewRangeError(op, "%s %d is out of range 0..%d", name, v, max)
	}
	if v < 0 {
		return 0, nil
	}
	return max, nil
}

// NewPlainTime constructs a wall-clock time. Out-of-range fields clamp
// under constrain and fail under reject.
func NewPlainTime(hour, minute, second, milli, micro, nano int, overflow temporal.Overflow) (PlainTime, error) {
	const op = "time.New"
	var err error
	if hour, err = clampTimeField(op, "hour", hour, 23, overflow); err != nil {
		return PlainTime{}, err
	}
	if minute, err = clampTimeField(op, "minute", minute, 59, overflow); err != nil {
		return PlainTime{}, err
	}
	if second, err = clampTimeField(op, "second", second, 59, overflow); err != nil {
		return PlainTime{}, err
	}
	if milli, err = clampTimeField(op, "millisecond", milli, 999, overflow); err != nil {
		return PlainTime{}, err
	}
	if micro, err = clampTimeField(op, "microsecond", micro, 999, overflow); err != nil {
		return PlainTime{}, err
	}
	if nano, err = clampTimeField(op, "nanosecond", nano, 999, overflow); err != nil {
		return PlainTime{}, err
	}
	ns := int64(hour)*3_600_000_000_000 +
		int64(minute)*60_000_000_000 +
		int64(second)*1_000_000_000 +
		int64(milli)*1_000_000 +
		int64(micro)*1_000 +
		int64(nano)
	return PlainTime{ns: ns}, nil
}

// TimeFromNanosecondOfDay constructs a time from a nanosecond-of-day
// position.
func TimeFromNanosecondOfDay(ns int64) (PlainTime, error) {
	if ns < 0 || ns >= temporal.NanosPerDay {
		return PlainTime{}, temporal.NewRangeError("time.New",
			"nanosecond of day %d is out of range", ns)
	}
	return PlainTime{ns: ns}, nil
}

// NanosecondOfDay returns the time's position within a 24-hour day.
func (t PlainTime) NanosecondOfDay() int64 { return t.ns }

func (t PlainTime) Hour() int        { return int(t.ns / 3_600_000_000_000) }
func (t PlainTime) Minute() int      { return int(t.ns / 60_000_000_000 % 60) }
func (t PlainTime) Second() int      { return int(t.ns / 1_000_000_000 % 60) }
func (t PlainTime) Millisecond() int { return int(t.ns / 1_000_000 % 1000) }
func (t PlainTime) Microsecond() int { return int(t.ns / 1_000 % 1000) }
func (t PlainTime) Nanosecond() int  { return int(t.ns % 1000) }

// With replaces the present fields and revalidates.
func (t PlainTime) With(f TimeFields, overflow temporal.Overflow) (PlainTime, error) {
	hour, minute, second := t.Hour(), t.Minute(), t.Second()
	milli, micro, nano := t.Millisecond(), t.Microsecond(), t.Nanosecond()
	if f.HasHour {
		hour = f.Hour
	}
	if f.HasMinute {
		minute = f.Minute
	}
	if f.HasSecond {
		second = f.Second
	}
	if f.HasMillisecond {
		milli = f.Millisecond
	}
	if f.HasMicrosecond {
		micro = f.Microsecond
	}
	if f.HasNanosecond {
		nano = f.Nanosecond
	}
	return NewPlainTime(hour, minute, second, milli, micro, nano, overflow)
}

// Add applies the time portion of a duration, wrapping around midnight.
// Durations carrying date units are rejected.
func (t PlainTime) Add(d duration.Duration) (PlainTime, error) {
	if d.HasDateUnits() {
		return PlainTime{}, temporal.NewRangeError("time.add",
			"durations with date units cannot be added to a wall-clock time")
	}
	shift := new(big.Int).Mod(d.TimeNanos(), big.NewInt(temporal.NanosPerDay))
	return PlainTime{ns: floorMod(t.ns+shift.Int64(), temporal.NanosPerDay)}, nil
}

// Subtract applies the negated duration.
func (t PlainTime) Subtract(d duration.Duration) (PlainTime, error) {
	return t.Add(d.Negated())
}

// Until returns the elapsed time from t to other as a duration balanced
// to the requested largest unit (default hours).
func (t PlainTime) Until(other PlainTime, opts DifferenceOptions) (duration.Duration, error) {
	const op = "time.until"
	largest := opts.LargestUnit
	if largest == temporal.UnitAuto {
		largest = temporal.UnitHour
	}
	if !largest.IsTimeUnit() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"largest unit %s is not usable with wall-clock times", largest)
	}
	if opts.SmallestUnit != temporal.UnitAuto && !opts.SmallestUnit.IsTimeUnit() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"smallest unit %s is not usable with wall-clock times", opts.SmallestUnit)
	}
	d, err := duration.FromNanos(big.NewInt(other.ns-t.ns), largest)
	if err != nil {
		return duration.Duration{}, err
	}
	if !opts.wantsRounding() {
		return d, nil
	}
	return d.Round(duration.RoundOptions{
		LargestUnit:  largest,
		SmallestUnit: opts.SmallestUnit,
		Increment:    opts.Increment,
		Mode:         opts.Mode,
	})
}

// Since returns the elapsed time from other to t.
func (t PlainTime) Since(other PlainTime, opts DifferenceOptions) (duration.Duration, error) {
	return other.Until(t, opts)
}

// Round rounds to a multiple of increment units, wrapping at midnight.
func (t PlainTime) Round(unit temporal.Unit, increment int64, mode temporal.RoundingMode) (PlainTime, error) {
	const op = "time.round"
	if !unit.IsTimeUnit() {
		return PlainTime{}, temporal.NewRangeError(op,
			"unit %s is not usable with wall-clock times", unit)
	}
	if increment == 0 {
		increment = 1
	}
	if err := temporal.ValidateIncrement(op, unit, increment); err != nil {
		return PlainTime{}, err
	}
	rounded := temporal.RoundInt64ToIncrement(t.ns, increment*temporal.NanosPer(unit), mode)
	return PlainTime{ns: floorMod(rounded, temporal.NanosPerDay)}, nil
}

// CompareTimes orders two wall-clock times.
func CompareTimes(a, b PlainTime) int {
	switch {
	case a.ns < b.ns:
		return -1
	case a.ns > b.ns:
		return 1
	}
	return 0
}

// Equal reports whether two times mark the same nanosecond of day.
func (t PlainTime) Equal(other PlainTime) bool { return t.ns == other.ns }
