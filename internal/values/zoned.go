package values

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/zone"
)

// ZonedDateTime is an exact time paired with a time zone and calendar.
// The wall-clock projection (offset, date, time of day) is recomputed
// eagerly on every construction, so it can never diverge from the exact
// time it was derived from.
type ZonedDateTime struct {
	t        exact.Time
	zoneID   string
	cal      calendar.Calendar
	resolver *zone.Resolver

	offsetSec int
	epochDay  int64
	timeNs    int64
	fields    calendar.Fields
}

// ZonedOptions bundles the policies consulted when wall-clock input must
// be re-resolved to an exact time. The zero value is constrain overflow,
// compatible disambiguation, offset use.
type ZonedOptions struct {
	Overflow       temporal.Overflow
	Disambiguation temporal.Disambiguation
	Offset         temporal.OffsetPolicy
}

// NewZonedDateTime projects an exact time into a zone and calendar.
func NewZonedDateTime(r *zone.Resolver, calendarID, zoneID string, t exact.Time) (ZonedDateTime, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return ZonedDateTime{}, err
	}
	offsetSec, epochDay, timeNs, err := r.WallFor(zoneID, t)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if epochDay > calendar.MaxEpochDay || epochDay < -calendar.MaxEpochDay {
		return ZonedDateTime{}, temporal.NewRangeError("zoned.New",
			"instant is outside the supported date range")
	}
	return ZonedDateTime{
		t:         t,
		zoneID:    zoneID,
		cal:       cal,
		resolver:  r,
		offsetSec: offsetSec,
		epochDay:  epochDay,
		timeNs:    timeNs,
		fields:    cal.FieldsFromEpochDay(epochDay),
	}, nil
}

// ZonedFromDateTime resolves a wall-clock date-time in a zone.
func ZonedFromDateTime(r *zone.Resolver, zoneID string, dt PlainDateTime, dis temporal.Disambiguation) (ZonedDateTime, error) {
	t, _, err := r.ExactFor(zoneID, dt.date.epochDay, dt.time.ns, dis)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(r, dt.date.cal.ID(), zoneID, t)
}

// ExactTime returns the instant.
func (z ZonedDateTime) ExactTime() exact.Time { return z.t }

// EpochNanoseconds returns the instant's offset from the epoch.
func (z ZonedDateTime) EpochNanoseconds() *big.Int { return z.t.EpochNanoseconds() }

// ZoneID returns the time zone identifier.
func (z ZonedDateTime) ZoneID() string { return z.zoneID }

// CalendarID returns the calendar identifier.
func (z ZonedDateTime) CalendarID() string { return z.cal.ID() }

// OffsetSeconds returns the UTC offset in effect, seconds east.
func (z ZonedDateTime) OffsetSeconds() int { return z.offsetSec }

// Fields returns the cached calendar field set.
func (z ZonedDateTime) Fields() calendar.Fields { return z.fields }

// Date returns the wall-clock date.
func (z ZonedDateTime) Date() PlainDate {
	return PlainDate{cal: z.cal, epochDay: z.epochDay, fields: z.fields}
}

// Time returns the wall-clock time of day.
func (z ZonedDateTime) Time() PlainTime { return PlainTime{ns: z.timeNs} }

// DateTime returns the full wall-clock projection.
func (z ZonedDateTime) DateTime() PlainDateTime {
	return PlainDateTime{date: z.Date(), time: z.Time()}
}

// WithZone reprojects the same instant into another zone.
func (z ZonedDateTime) WithZone(zoneID string) (ZonedDateTime, error) {
	return NewZonedDateTime(z.resolver, z.cal.ID(), zoneID, z.t)
}

// WithCalendar reinterprets the same instant under another calendar.
func (z ZonedDateTime) WithCalendar(calendarID string) (ZonedDateTime, error) {
	return NewZonedDateTime(z.resolver, calendarID, z.zoneID, z.t)
}

// With replaces the present wall-clock fields and re-resolves against the
// zone. The current offset participates per the offset policy, so a
// time-only change inside an overlap stays on the same side of the
// transition under the default prefer policy.
func (z ZonedDateTime) With(date calendar.FieldInputs, time TimeFields, opts ZonedOptions) (ZonedDateTime, error) {
	epochDay, err := z.cal.EpochDayFromFields(mergeDateFields(z.fields, date), opts.Overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	wall, err := z.Time().With(time, opts.Overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	t, err := z.resolver.ExactForWithOffset(z.zoneID, epochDay, wall.ns, z.offsetSec, opts.Offset, opts.Disambiguation)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, t)
}

// WithPlainTime replaces the time of day, re-resolving compatibly.
func (z ZonedDateTime) WithPlainTime(t PlainTime) (ZonedDateTime, error) {
	et, _, err := z.resolver.ExactFor(z.zoneID, z.epochDay, t.ns, temporal.DisambiguationCompatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, et)
}

// Add moves the zoned date-time by a duration. Calendar and day units
// apply in wall-clock space, keeping the time of day fixed across offset
// transitions; time units then apply in exact space.
func (z ZonedDateTime) Add(dur duration.Duration, overflow temporal.Overflow) (ZonedDateTime, error) {
	t := z.t
	if dur.HasDateUnits() {
		epochDay, err := z.cal.AddDate(z.epochDay, dur.Years(), dur.Months(), dur.Weeks(), dur.Days(), overflow)
		if err != nil {
			return ZonedDateTime{}, err
		}
		t, _, err = z.resolver.ExactFor(z.zoneID, epochDay, z.timeNs, temporal.DisambiguationCompatible)
		if err != nil {
			return ZonedDateTime{}, err
		}
	}
	t, err := t.AddNanos(dur.TimeNanos())
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, t)
}

// Subtract moves the zoned date-time backward by the duration.
func (z ZonedDateTime) Subtract(dur duration.Duration, overflow temporal.Overflow) (ZonedDateTime, error) {
	return z.Add(dur.Negated(), overflow)
}

// Until returns the difference from z to other, balanced to the
// requested largest unit (default hours). Date-unit balancing measures
// through z's zone and requires both values to share zone and calendar.
func (z ZonedDateTime) Until(other ZonedDateTime, opts DifferenceOptions) (duration.Duration, error) {
	const op = "zoned.until"
	largest := opts.LargestUnit
	if largest == temporal.UnitAuto {
		largest = temporal.UnitHour
	}

	if largest.IsTimeUnit() {
		return duration.ExactUntil(z.t, other.t, duration.RoundOptions{
			LargestUnit:  largest,
			SmallestUnit: opts.SmallestUnit,
			Increment:    opts.Increment,
			Mode:         opts.Mode,
		})
	}

	if z.zoneID != other.zoneID {
		return duration.Duration{}, temporal.NewRangeError(op,
			"calendar-unit differences require matching zones, got %s and %s", z.zoneID, other.zoneID)
	}
	if z.cal.ID() != other.cal.ID() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"cannot subtract zoned date-times in calendars %s and %s", other.cal.ID(), z.cal.ID())
	}
	anchor := duration.NewZonedAnchor(z.cal, z.epochDay, z.timeNs, z.zoneID, z.resolver)
	dur, err := duration.UntilAnchored(anchor, other.t.EpochNanoseconds(), largest)
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

// Since returns the difference from other to z.
func (z ZonedDateTime) Since(other ZonedDateTime, opts DifferenceOptions) (duration.Duration, error) {
	return other.Until(z, opts)
}

// Round rounds the wall-clock projection and re-resolves, preferring the
// current offset. Unit day rounds against the day's actual length in the
// zone and admits only increment 1.
func (z ZonedDateTime) Round(unit temporal.Unit, increment int64, mode temporal.RoundingMode) (ZonedDateTime, error) {
	const op = "zoned.round"
	if increment == 0 {
		increment = 1
	}

	var epochDay, wallNs int64
	switch {
	case unit == temporal.UnitDay:
		if increment != 1 {
			return ZonedDateTime{}, temporal.NewRangeError(op,
				"increment must be 1 for day rounding")
		}
		start, _, err := z.resolver.ExactFor(z.zoneID, z.epochDay, 0, temporal.DisambiguationCompatible)
		if err != nil {
			return ZonedDateTime{}, err
		}
		next, _, err := z.resolver.ExactFor(z.zoneID, z.epochDay+1, 0, temporal.DisambiguationCompatible)
		if err != nil {
			return ZonedDateTime{}, err
		}
		dayLen := exact.DiffNanos(start, next)
		elapsed := exact.DiffNanos(start, z.t)
		carry := temporal.RoundQuotient(elapsed, dayLen, mode)
		if !carry.IsInt64() {
			return ZonedDateTime{}, temporal.NewRangeError(op, "result is out of the supported range")
		}
		epochDay, wallNs = z.epochDay+carry.Int64(), 0

	case unit.IsTimeUnit():
		if err := temporal.ValidateIncrement(op, unit, increment); err != nil {
			return ZonedDateTime{}, err
		}
		rounded := temporal.RoundInt64ToIncrement(z.timeNs, increment*temporal.NanosPer(unit), mode)
		epochDay = z.epochDay + floorDiv(rounded, temporal.NanosPerDay)
		wallNs = floorMod(rounded, temporal.NanosPerDay)

	default:
		return ZonedDateTime{}, temporal.NewRangeError(op,
			"unit %s is not usable for zoned rounding", unit)
	}

	t, err := z.resolver.ExactForWithOffset(z.zoneID, epochDay, wallNs, z.offsetSec,
		temporal.OffsetPrefer, temporal.DisambiguationCompatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, t)
}

// StartOfDay returns the first instant of the wall-clock day, which is
// not necessarily midnight when a transition skips it.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	t, _, err := z.resolver.ExactFor(z.zoneID, z.epochDay, 0, temporal.DisambiguationCompatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, t)
}

// TimeZoneTransition returns the zone's closest offset transition
// strictly after (next) or strictly before (previous) this instant, or
// ok=false if none exists.
func (z ZonedDateTime) TimeZoneTransition(direction temporal.Direction) (ZonedDateTime, bool, error) {
	t, ok, err := z.resolver.NextTransition(z.zoneID, z.t, direction)
	if err != nil || !ok {
		return ZonedDateTime{}, false, err
	}
	out, err := NewZonedDateTime(z.resolver, z.cal.ID(), z.zoneID, t)
	if err != nil {
		return ZonedDateTime{}, false, err
	}
	return out, true, nil
}

// CompareZoned orders two zoned date-times by instant, regardless of
// zone or calendar.
func CompareZoned(a, b ZonedDateTime) int { return exact.Compare(a.t, b.t) }

// Equal reports whether two zoned date-times name the same instant in
// the same zone and calendar.
func (z ZonedDateTime) Equal(other ZonedDateTime) bool {
	return z.t.Equal(other.t) && z.zoneID == other.zoneID && z.cal.ID() == other.cal.ID()
}
