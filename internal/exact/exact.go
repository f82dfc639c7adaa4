// Package exact implements nanosecond-resolution exact time: a calendar-
// and zone-independent point in time counted from the Unix epoch.
//
// The count is proleptic and leap-second-free. Supported range is
// ±100,000,000 days from the epoch; construction outside that range fails
// with a RangeError-kind error.
//
// Epoch nanosecond counts exceed 2^53 well inside the supported range, so
// the public count surface is *big.Int. Internally a Time is a pair of
// (seconds, nanosecond-of-second), which keeps comparison and ordinary
// arithmetic on machine words.
package exact

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/temporal"
)

const (
	nsPerSecond = int64(1_000_000_000)

	// maxEpochSeconds is 100,000,000 days of 86,400 seconds.
	maxEpochSeconds = int64(8_640_000_000_000_000)
)

var (
	bigNsPerSecond = big.NewInt(nsPerSecond)

	// maxEpochNanos bounds the representable range, inclusive.
	maxEpochNanos = new(big.Int).Mul(big.NewInt(maxEpochSeconds), bigNsPerSecond)
	minEpochNanos = new(big.Int).Neg(maxEpochNanos)
)

// Time is an exact instant. The zero value is the Unix epoch. Time is an
// immutable value; equality is value equality and nothing else.
type Time struct {
	sec  int64 // seconds since epoch, may be negative
	nsec int32 // nanosecond of second, always in [0, 1e9)
}

// FromEpochNanoseconds constructs a Time from a nanosecond count.
func FromEpochNanoseconds(ns *big.Int) (Time, error) {
	if ns.Cmp(maxEpochNanos) > 0 || ns.Cmp(minEpochNanos) < 0 {
		return Time{}, temporal.NewRangeError("exact.FromEpochNanoseconds",
			"epoch nanoseconds %s outside supported range", ns.String())
	}
	sec, nsec := splitNanos(ns)
	return Time{sec: sec, nsec: nsec}, nil
}

// FromEpochMilliseconds constructs a Time from a millisecond count,
// scaled by 10^6.
func FromEpochMilliseconds(ms int64) (Time, error) {
	ns := new(big.Int).Mul(big.NewInt(ms), big.NewInt(1_000_000))
	return FromEpochNanoseconds(ns)
}

// FromUnix constructs a Time from seconds plus nanoseconds, in the style
// of time.Unix. The nanosecond argument may be outside [0, 1e9).
func FromUnix(sec, nsec int64) (Time, error) {
	total := new(big.Int).Mul(big.NewInt(sec), bigNsPerSecond)
	total.Add(total, big.NewInt(nsec))
	return FromEpochNanoseconds(total)
}

// splitNanos converts a total nanosecond count into a normalized
// (seconds, nanosecond-of-second) pair using floored division.
func splitNanos(ns *big.Int) (int64, int32) {
	sec := new(big.Int)
	rem := new(big.Int)
	sec.QuoRem(ns, bigNsPerSecond, rem)
	if rem.Sign() < 0 {
		sec.Sub(sec, big.NewInt(1))
		rem.Add(rem, bigNsPerSecond)
	}
	return sec.Int64(), int32(rem.Int64())
}

// EpochNanoseconds returns the instant as a nanosecond count. The result
// is a fresh big.Int owned by the caller.
func (t Time) EpochNanoseconds() *big.Int {
	ns := new(big.Int).Mul(big.NewInt(t.sec), bigNsPerSecond)
	return ns.Add(ns, big.NewInt(int64(t.nsec)))
}

// EpochMilliseconds returns the instant as a millisecond count, floored.
// The value always fits in an int64 within the supported range.
func (t Time) EpochMilliseconds() int64 {
	ms := t.sec * 1000
	ms += int64(t.nsec) / 1_000_000
	return ms
}

// EpochSeconds returns the floored whole-second count.
func (t Time) EpochSeconds() int64 { return t.sec }

// NanosecondOfSecond returns the nanosecond within the current second,
// always in [0, 1e9).
func (t Time) NanosecondOfSecond() int32 { return t.nsec }

// AddNanos returns t shifted by ns nanoseconds, failing with a
// RangeError-kind error if the result leaves the supported range.
func (t Time) AddNanos(ns *big.Int) (Time, error) {
	total := t.EpochNanoseconds()
	total.Add(total, ns)
	shifted, err := FromEpochNanoseconds(total)
	if err != nil {
		return Time{}, temporal.NewRangeError("exact.Add",
			"result outside supported range")
	}
	return shifted, nil
}

// DiffNanos returns b - a in nanoseconds.
func DiffNanos(a, b Time) *big.Int {
	d := b.EpochNanoseconds()
	return d.Sub(d, a.EpochNanoseconds())
}

// Compare returns -1, 0, or +1 ordering a before, equal to, or after b.
// Ordering is total, by nanosecond count.
func Compare(a, b Time) int {
	switch {
	case a.sec < b.sec:
		return -1
	case a.sec > b.sec:
		return 1
	case a.nsec < b.nsec:
		return -1
	case a.nsec > b.nsec:
		return 1
	}
	return 0
}

// Equal reports whether a and b are the same instant.
func (t Time) Equal(u Time) bool { return t == u }

// Before reports whether t precedes u.
func (t Time) Before(u Time) bool { return Compare(t, u) < 0 }

// After reports whether t follows u.
func (t Time) After(u Time) bool { return Compare(t, u) > 0 }

// Round rounds t to a multiple of increment × unit counted from the
// epoch. The smallest unit must be a time unit (hour..nanosecond) and the
// increment boundary must divide a 24-hour day evenly.
func (t Time) Round(unit temporal.Unit, increment int64, mode temporal.RoundingMode) (Time, error) {
	const op = "exact.Round"
	if !unit.IsTimeUnit() {
		return Time{}, temporal.NewRangeError(op, "smallest unit %s is not a time unit", unit)
	}
	if increment < 1 {
		return Time{}, temporal.NewRangeError(op, "rounding increment must be at least 1, got %d", increment)
	}
	unitNs := temporal.NanosPer(unit)
	if increment > temporal.NanosPerDay/unitNs {
		return Time{}, temporal.NewRangeError(op,
			"increment of %d %ss exceeds one day", increment, unit)
	}
	incNs := increment * unitNs
	if temporal.NanosPerDay%incNs != 0 {
		return Time{}, temporal.NewRangeError(op,
			"increment of %d %ss does not evenly divide a day", increment, unit)
	}
	rounded := temporal.RoundToIncrement(t.EpochNanoseconds(), incNs, mode)
	res, err := FromEpochNanoseconds(rounded)
	if err != nil {
		return Time{}, temporal.NewRangeError(op, "rounded instant outside supported range")
	}
	return res, nil
}
