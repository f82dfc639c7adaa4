package duration

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/temporal"
)

// RoundOptions is the option bag shared by Round and the until/since
// operations of the composite value types. Zero values mean: largest unit
// auto (largest nonzero unit already present), smallest unit nanosecond,
// increment 1, mode halfExpand, no anchor.
type RoundOptions struct {
	LargestUnit  temporal.Unit
	SmallestUnit temporal.Unit
	Increment    int64
	Mode         temporal.RoundingMode
	RelativeTo   *Anchor
}

func (o RoundOptions) resolve(op string, existingLargest temporal.Unit) (largest, smallest temporal.Unit, inc int64, err error) {
	smallest = o.SmallestUnit
	if smallest == temporal.UnitAuto {
		smallest = temporal.UnitNanosecond
	}
	largest = o.LargestUnit
	if largest == temporal.UnitAuto {
		largest = existingLargest
		if smallest.Larger(largest) {
			largest = smallest
		}
	}
	if smallest.Larger(largest) {
		return 0, 0, 0, temporal.NewRangeError(op,
			"smallest unit %s is larger than largest unit %s", smallest, largest)
	}
	inc = o.Increment
	if inc == 0 {
		inc = 1
	}
	if err := temporal.ValidateIncrement(op, smallest, inc); err != nil {
		return 0, 0, 0, err
	}
	return largest, smallest, inc, nil
}

// roundBig rounds x to a multiple of inc (positive big increment).
func roundBig(x, inc *big.Int, mode temporal.RoundingMode) *big.Int {
	q := temporal.RoundQuotient(x, inc, mode)
	return q.Mul(q, inc)
}

func incrementNanos(unit temporal.Unit, inc int64) *big.Int {
	n := big.NewInt(inc)
	return n.Mul(n, big.NewInt(temporal.NanosPer(unit)))
}

// Round rounds the duration to an increment boundary of the smallest
// unit and re-balances the result up into the largest unit.
//
// Without an anchor, days count as exactly 24 hours and calendar units
// are rejected. With an anchor, calendar units convert through the
// anchor's calendar (and, for zoned anchors, through actual day lengths).
func (d Duration) Round(opts RoundOptions) (Duration, error) {
	const op = "duration.round"
	largest, smallest, inc, err := opts.resolve(op, d.LargestUnit())
	if err != nil {
		return Duration{}, err
	}
	anchor := opts.RelativeTo

	needsAnchor := d.HasCalendarUnits() || largest.IsCalendarUnit() || smallest.IsCalendarUnit()
	if anchor == nil {
		if needsAnchor {
			return Duration{}, temporal.NewRangeError(op,
				"a relativeTo anchor is required to interpret calendar units")
		}
		rounded := roundBig(d.fixedNanos(), incrementNanos(smallest, inc), opts.Mode)
		f, err := balanceFixed(rounded, largest)
		if err != nil {
			return Duration{}, err
		}
		return FromFields(f)
	}

	if smallest.IsDateUnit() {
		return d.roundToDateUnit(anchor, largest, smallest, inc, opts.Mode)
	}
	return d.roundToTimeUnit(anchor, largest, smallest, inc, opts.Mode)
}

// roundToDateUnit rounds to a calendar (or day) boundary: the duration's
// end position is bracketed between whole smallest-unit steps from the
// anchor, the fractional progress between the bracketing boundaries is
// computed exactly, and the whole-unit count rounds per mode.
func (d Duration) roundToDateUnit(anchor *Anchor, largest, smallest temporal.Unit, inc int64, mode temporal.RoundingMode) (Duration, error) {
	end, err := anchor.endPosition(d)
	if err != nil {
		return Duration{}, err
	}
	n, den, rem, sign, err := anchor.wholeUnits(smallest, end)
	if err != nil {
		return Duration{}, err
	}
	if sign == 0 {
		return Zero(), nil
	}
	// total = n + sign*rem/den, rounded to a multiple of inc.
	num := new(big.Int).Mul(big.NewInt(n), den)
	adj := new(big.Int).Mul(big.NewInt(int64(sign)), rem)
	num.Add(num, adj)
	denInc := new(big.Int).Mul(den, big.NewInt(inc))
	count := temporal.RoundQuotient(num, denInc, mode)
	count.Mul(count, big.NewInt(inc))
	if !count.IsInt64() {
		return Duration{}, temporal.NewRangeError("duration.round", "duration out of range")
	}
	return regroupDateUnits(anchor, smallest, count.Int64(), largest)
}

// regroupDateUnits converts a whole count of one date unit into a
// balanced date duration no larger than largest. Weeks never regroup
// into months or years.
func regroupDateUnits(anchor *Anchor, unit temporal.Unit, count int64, largest temporal.Unit) (Duration, error) {
	var f Fields
	switch unit {
	case temporal.UnitYear:
		f.Years = count
	case temporal.UnitWeek:
		f.Weeks = count
	case temporal.UnitMonth:
		if largest == temporal.UnitYear {
			day, err := anchor.Calendar.AddDate(anchor.EpochDay, 0, count, 0, 0, temporal.OverflowConstrain)
			if err != nil {
				return Duration{}, err
			}
			diff, err := anchor.Calendar.DateUntil(anchor.EpochDay, day, temporal.UnitYear)
			if err != nil {
				return Duration{}, err
			}
			f.Years, f.Months = diff.Years, diff.Months
		} else {
			f.Months = count
		}
	case temporal.UnitDay:
		if largest.IsCalendarUnit() {
			day := anchor.EpochDay + count
			cap := largest
			diff, err := anchor.Calendar.DateUntil(anchor.EpochDay, day, cap)
			if err != nil {
				return Duration{}, err
			}
			f.Years, f.Months, f.Weeks, f.Days = diff.Years, diff.Months, diff.Weeks, diff.Days
		} else {
			f.Days = count
		}
	}
	return FromFields(f)
}

// roundToTimeUnit rounds to a time-unit boundary while calendar fields
// are present or requested.
func (d Duration) roundToTimeUnit(anchor *Anchor, largest, smallest temporal.Unit, inc int64, mode temporal.RoundingMode) (Duration, error) {
	base, err := anchor.base()
	if err != nil {
		return Duration{}, err
	}
	end, err := anchor.endPosition(d)
	if err != nil {
		return Duration{}, err
	}
	incNs := incrementNanos(smallest, inc)

	if largest.IsTimeUnit() {
		span := new(big.Int).Sub(end, base)
		rounded := roundBig(span, incNs, mode)
		f, err := balanceFixed(rounded, largest)
		if err != nil {
			return Duration{}, err
		}
		return FromFields(f)
	}

	// Calendar fields stay fixed; only the days+time tail is nudged
	// against (possibly zone-length) day boundaries.
	dateStart, err := anchor.position(d.f.Years, d.f.Months, d.f.Weeks, d.f.Days, nil)
	if err != nil {
		return Duration{}, err
	}
	tail := new(big.Int).Sub(end, dateStart)
	tail = roundBig(tail, incNs, mode)

	extraDays := int64(0)
	dir := int64(tail.Sign())
	for dir != 0 {
		cur, err := anchor.position(d.f.Years, d.f.Months, d.f.Weeks, d.f.Days+extraDays, nil)
		if err != nil {
			return Duration{}, err
		}
		next, err := anchor.position(d.f.Years, d.f.Months, d.f.Weeks, d.f.Days+extraDays+dir, nil)
		if err != nil {
			return Duration{}, err
		}
		dayLen := new(big.Int).Sub(next, cur)
		if dayLen.CmpAbs(tail) > 0 {
			break
		}
		tail.Sub(tail, dayLen)
		extraDays += dir
	}

	timeFields, err := balanceFixed(tail, temporal.UnitHour)
	if err != nil {
		return Duration{}, err
	}
	f, err := regroupDate(anchor, d.f.Years, d.f.Months, d.f.Weeks, d.f.Days+extraDays, largest)
	if err != nil {
		return Duration{}, err
	}
	f.Hours = timeFields.Hours
	f.Minutes = timeFields.Minutes
	f.Seconds = timeFields.Seconds
	f.Milliseconds = timeFields.Milliseconds
	f.Microseconds = timeFields.Microseconds
	f.Nanoseconds = timeFields.Nanoseconds
	return FromFields(f)
}

// regroupDate balances a date duration against the anchor's calendar so
// that no field exceeds largest. Years and months regroup through the
// calendar's month sequence; weeks never absorb months and are only
// produced from days when largest is week.
func regroupDate(anchor *Anchor, years, months, weeks, days int64, largest temporal.Unit) (Fields, error) {
	var f Fields
	switch largest {
	case temporal.UnitYear, temporal.UnitMonth:
		dayEnd, err := anchor.Calendar.AddDate(anchor.EpochDay, years, months, 0, days, temporal.OverflowConstrain)
		if err != nil {
			return Fields{}, err
		}
		diff, err := anchor.Calendar.DateUntil(anchor.EpochDay, dayEnd, largest)
		if err != nil {
			return Fields{}, err
		}
		f.Years, f.Months, f.Days = diff.Years, diff.Months, diff.Days
		f.Weeks = weeks
	case temporal.UnitWeek:
		day, err := anchor.Calendar.AddDate(anchor.EpochDay, years, months, weeks, days, temporal.OverflowConstrain)
		if err != nil {
			return Fields{}, err
		}
		diff, err := anchor.Calendar.DateUntil(anchor.EpochDay, day, temporal.UnitWeek)
		if err != nil {
			return Fields{}, err
		}
		f.Weeks, f.Days = diff.Weeks, diff.Days
	case temporal.UnitDay:
		day, err := anchor.Calendar.AddDate(anchor.EpochDay, years, months, weeks, days, temporal.OverflowConstrain)
		if err != nil {
			return Fields{}, err
		}
		f.Days = day - anchor.EpochDay
	default:
		return Fields{}, temporal.NewRangeError("duration.round", "largest unit %s is not a date unit", largest)
	}
	return f, nil
}
