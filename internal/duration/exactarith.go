package duration

import (
	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
)

// AddExact shifts an exact instant by a duration. Exact time has no
// calendar, so durations carrying any calendar unit — including days —
// are rejected with a RangeError-kind error.
func AddExact(t exact.Time, d Duration) (exact.Time, error) {
	if d.HasDateUnits() {
		return exact.Time{}, temporal.NewRangeError("exact.add",
			"durations with calendar units cannot be added to an exact time")
	}
	return t.AddNanos(d.TimeNanos())
}

// SubtractExact shifts an exact instant backward by a duration.
func SubtractExact(t exact.Time, d Duration) (exact.Time, error) {
	return AddExact(t, d.Negated())
}

// ExactUntil computes the difference from a to b as a duration balanced
// and rounded per opts. Only time units are meaningful; the largest unit
// defaults to seconds and date units are rejected.
func ExactUntil(a, b exact.Time, opts RoundOptions) (Duration, error) {
	const op = "exact.until"
	if opts.LargestUnit == temporal.UnitAuto {
		opts.LargestUnit = temporal.UnitSecond
		if opts.SmallestUnit != temporal.UnitAuto && opts.SmallestUnit.Larger(temporal.UnitSecond) {
			opts.LargestUnit = opts.SmallestUnit
		}
	}
	if !opts.LargestUnit.IsTimeUnit() {
		return Duration{}, temporal.NewRangeError(op, "largest unit %s is not a time unit", opts.LargestUnit)
	}
	if opts.SmallestUnit != temporal.UnitAuto && !opts.SmallestUnit.IsTimeUnit() {
		return Duration{}, temporal.NewRangeError(op, "smallest unit %s is not a time unit", opts.SmallestUnit)
	}
	largest, smallest, inc, err := opts.resolve(op, opts.LargestUnit)
	if err != nil {
		return Duration{}, err
	}
	span := exact.DiffNanos(a, b)
	rounded := roundBig(span, incrementNanos(smallest, inc), opts.Mode)
	f, err := balanceFixed(rounded, largest)
	if err != nil {
		return Duration{}, err
	}
	return FromFields(f)
}

// ExactSince computes the difference from b back to a.
func ExactSince(a, b exact.Time, opts RoundOptions) (Duration, error) {
	d, err := ExactUntil(b, a, opts)
	if err != nil {
		return Duration{}, err
	}
	return d, nil
}
