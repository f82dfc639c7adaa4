package duration

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/temporal"
)

// wholeUnits brackets the position end between whole steps of unit u from
// the anchor: it returns the signed whole-unit count n such that stepping
// n units does not pass end but n+sign does, together with the exact
// fraction of the next step already covered (rem/den, both non-negative,
// rem < den). sign is the direction from the anchor to end.
func (a *Anchor) wholeUnits(u temporal.Unit, end *big.Int) (n int64, den, rem *big.Int, sign int, err error) {
	base, err := a.base()
	if err != nil {
		return 0, nil, nil, 0, err
	}
	sign = end.Cmp(base)
	if sign == 0 {
		return 0, big.NewInt(1), big.NewInt(0), 0, nil
	}
	beyond := func(pos *big.Int) bool {
		if sign > 0 {
			return pos.Cmp(end) > 0
		}
		return pos.Cmp(end) < 0
	}

	// Exponential search for the first power-of-two step count past end,
	// then bisect for the largest count that does not pass it.
	const searchCap = int64(1) << 42
	hi := int64(1)
	for {
		pos, err := a.unitPosition(u, int64(sign)*hi)
		if err != nil {
			return 0, nil, nil, 0, err
		}
		if beyond(pos) {
			break
		}
		if hi > searchCap {
			return 0, nil, nil, 0, temporal.NewRangeError("duration", "duration out of range")
		}
		hi *= 2
	}
	lo := hi / 2 // t(sign*lo) is known not to pass end (lo 0 means the base)
	if hi == 1 {
		lo = 0
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		pos, err := a.unitPosition(u, int64(sign)*mid)
		if err != nil {
			return 0, nil, nil, 0, err
		}
		if beyond(pos) {
			hi = mid
		} else {
			lo = mid
		}
	}

	n = int64(sign) * lo
	tn, err := a.unitPosition(u, n)
	if err != nil {
		return 0, nil, nil, 0, err
	}
	tnext, err := a.unitPosition(u, n+int64(sign))
	if err != nil {
		return 0, nil, nil, 0, err
	}
	den = new(big.Int).Sub(tnext, tn)
	den.Abs(den)
	rem = new(big.Int).Sub(end, tn)
	rem.Abs(rem)
	return n, den, rem, sign, nil
}

// Total converts the whole duration into a real-number count of unit,
// without rounding. Calendar units in the duration or in unit require an
// anchor.
func (d Duration) Total(unit temporal.Unit, anchor *Anchor) (float64, error) {
	const op = "duration.total"
	if unit == temporal.UnitAuto {
		return 0, temporal.NewTypeError(op, "a unit is required")
	}
	if anchor == nil {
		if d.HasCalendarUnits() || unit.IsCalendarUnit() {
			return 0, temporal.NewRangeError(op,
				"a relativeTo anchor is required to interpret calendar units")
		}
		rat := new(big.Rat).SetFrac(d.fixedNanos(), big.NewInt(temporal.NanosPer(unit)))
		f, _ := rat.Float64()
		return f, nil
	}

	end, err := anchor.endPosition(d)
	if err != nil {
		return 0, err
	}
	if unit.IsTimeUnit() {
		base, err := anchor.base()
		if err != nil {
			return 0, err
		}
		span := new(big.Int).Sub(end, base)
		rat := new(big.Rat).SetFrac(span, big.NewInt(temporal.NanosPer(unit)))
		f, _ := rat.Float64()
		return f, nil
	}

	n, den, rem, sign, err := anchor.wholeUnits(unit, end)
	if err != nil {
		return 0, err
	}
	if sign == 0 {
		return 0, nil
	}
	num := new(big.Int).Mul(big.NewInt(n), den)
	num.Add(num, new(big.Int).Mul(big.NewInt(int64(sign)), rem))
	rat := new(big.Rat).SetFrac(num, den)
	f, _ := rat.Float64()
	return f, nil
}

// Compare orders two durations by their exact total span. Calendar units
// in either operand require an anchor; durations with equal fields
// compare equal without one.
func Compare(a, b Duration, anchor *Anchor) (int, error) {
	if a.f == b.f {
		return 0, nil
	}
	if anchor == nil {
		if a.HasCalendarUnits() || b.HasCalendarUnits() {
			return 0, temporal.NewRangeError("duration.compare",
				"a relativeTo anchor is required to interpret calendar units")
		}
		return a.fixedNanos().Cmp(b.fixedNanos()), nil
	}
	endA, err := anchor.endPosition(a)
	if err != nil {
		return 0, err
	}
	endB, err := anchor.endPosition(b)
	if err != nil {
		return 0, err
	}
	return endA.Cmp(endB), nil
}

func addInt64(op string, a, b int64) (int64, error) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, temporal.NewRangeError(op, "duration field overflow")
	}
	return s, nil
}

// Add sums the two durations field by field. Calendar units have no
// fixed length, so any operand carrying years, months, or weeks needs an
// anchor even when the raw sum is well-formed. When the raw sum mixes
// signs it re-balances: time-only sums balance through fixed-length
// units, sums carrying calendar units convert through the anchor.
func (d Duration) Add(other Duration, anchor *Anchor) (Duration, error) {
	const op = "duration.add"
	if anchor == nil && (d.HasCalendarUnits() || other.HasCalendarUnits()) {
		return Duration{}, temporal.NewRangeError(op,
			"a relativeTo anchor is required to interpret calendar units")
	}
	var sum Fields
	for _, u := range unitOrder {
		v, err := addInt64(op, d.f.get(u), other.f.get(u))
		if err != nil {
			return Duration{}, err
		}
		sum.set(u, v)
	}
	if res, err := FromFields(sum); err == nil {
		return res, nil
	}

	// Mixed-sign raw sum: re-balance.
	largest := d.LargestUnit()
	if ol := other.LargestUnit(); ol.Larger(largest) {
		largest = ol
	}
	if !d.HasCalendarUnits() && !other.HasCalendarUnits() {
		total := d.fixedNanos()
		total.Add(total, other.fixedNanos())
		f, err := balanceFixed(total, largest)
		if err != nil {
			return Duration{}, err
		}
		return FromFields(f)
	}
	// Walk the anchor through both date parts, then measure back.
	day1, err := anchor.Calendar.AddDate(anchor.EpochDay, d.f.Years, d.f.Months, d.f.Weeks, d.f.Days, temporal.OverflowConstrain)
	if err != nil {
		return Duration{}, err
	}
	day2, err := anchor.Calendar.AddDate(day1, other.f.Years, other.f.Months, other.f.Weeks, other.f.Days, temporal.OverflowConstrain)
	if err != nil {
		return Duration{}, err
	}
	mid := *anchor
	mid.EpochDay = day2
	timeNs := d.TimeNanos()
	timeNs.Add(timeNs, other.TimeNanos())
	end, err := mid.position(0, 0, 0, 0, timeNs)
	if err != nil {
		return Duration{}, err
	}
	return UntilAnchored(anchor, end, largest)
}

// Subtract is Add with the second operand negated.
func (d Duration) Subtract(other Duration, anchor *Anchor) (Duration, error) {
	return d.Add(other.Negated(), anchor)
}

// UntilAnchored balances the span from the anchor to the epoch-nanosecond
// position end into a duration whose largest unit is largestUnit. Day
// boundaries come from the anchor, so zoned anchors produce days of their
// actual length.
func UntilAnchored(anchor *Anchor, end *big.Int, largestUnit temporal.Unit) (Duration, error) {
	if largestUnit.IsTimeUnit() {
		base, err := anchor.base()
		if err != nil {
			return Duration{}, err
		}
		span := new(big.Int).Sub(end, base)
		f, err := balanceFixed(span, largestUnit)
		if err != nil {
			return Duration{}, err
		}
		return FromFields(f)
	}

	days, _, _, sign, err := anchor.wholeUnits(temporal.UnitDay, end)
	if err != nil {
		return Duration{}, err
	}
	if sign == 0 {
		return Zero(), nil
	}
	dayPos, err := anchor.unitPosition(temporal.UnitDay, days)
	if err != nil {
		return Duration{}, err
	}
	remNs := new(big.Int).Sub(end, dayPos)
	timeFields, err := balanceFixed(remNs, temporal.UnitHour)
	if err != nil {
		return Duration{}, err
	}
	f, err := regroupDate(anchor, 0, 0, 0, days, largestUnit)
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
