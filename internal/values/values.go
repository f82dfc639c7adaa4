// Package values provides the immutable composite date/time values:
// PlainTime, PlainDate, PlainDateTime, PlainYearMonth, PlainMonthDay,
// and ZonedDateTime.
//
// Every value is constructed fully validated or not at all, and every
// mutating operation returns a new value. Calendar-dependent fields are
// derived through the calendar registry; zone-dependent resolution goes
// through an injected zone.Resolver. The package itself performs no I/O.
package values

import "github.com/tempuslib/tempus/internal/temporal"

// DifferenceOptions controls Until and Since on the composite values.
// The zero value asks for the type's default largest unit, no rounding.
type DifferenceOptions struct {
	LargestUnit  temporal.Unit
	SmallestUnit temporal.Unit
	Increment    int64
	Mode         temporal.RoundingMode
}

func (o DifferenceOptions) wantsRounding() bool {
	return o.SmallestUnit != temporal.UnitAuto || o.Increment > 1 ||
		o.Mode != temporal.RoundHalfExpand
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
