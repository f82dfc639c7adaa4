package duration

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/zone"
)

// Anchor is the relativeTo reference point that gives calendar units a
// length. A plain anchor is a calendar date (optionally with a wall
// time); day lengths are a fixed 24 hours. A zoned anchor additionally
// carries a zone and resolver, so day lengths follow the zone's actual
// offset transitions.
//
// Anchors are pure values; the resolver they reference performs no I/O.
type Anchor struct {
	Calendar calendar.Calendar
	EpochDay int64
	TimeNs   int64 // wall time of day, [0, NanosPerDay)

	Zoned    bool
	ZoneID   string
	Resolver *zone.Resolver
}

// NewAnchor creates a plain calendar-date anchor.
func NewAnchor(c calendar.Calendar, epochDay int64, timeNs int64) *Anchor {
	return &Anchor{Calendar: c, EpochDay: epochDay, TimeNs: timeNs}
}

// NewZonedAnchor creates an anchor whose day lengths follow a zone.
func NewZonedAnchor(c calendar.Calendar, epochDay int64, timeNs int64, zoneID string, r *zone.Resolver) *Anchor {
	return &Anchor{Calendar: c, EpochDay: epochDay, TimeNs: timeNs, Zoned: true, ZoneID: zoneID, Resolver: r}
}

var bigNanosPerDay = big.NewInt(temporal.NanosPerDay)

// position returns the epoch-nanosecond position of the anchor shifted by
// a date duration plus extra nanoseconds. Date units move through the
// anchor's calendar; for zoned anchors the shifted wall-clock resolves
// through the zone with compatible disambiguation before the nanoseconds
// apply in exact time.
func (a *Anchor) position(years, months, weeks, days int64, extraNs *big.Int) (*big.Int, error) {
	day, err := a.Calendar.AddDate(a.EpochDay, years, months, weeks, days, temporal.OverflowConstrain)
	if err != nil {
		return nil, err
	}
	var pos *big.Int
	if a.Zoned {
		t, _, err := a.Resolver.ExactFor(a.ZoneID, day, a.TimeNs, temporal.DisambiguationCompatible)
		if err != nil {
			return nil, err
		}
		pos = t.EpochNanoseconds()
	} else {
		pos = new(big.Int).Mul(big.NewInt(day), bigNanosPerDay)
		pos.Add(pos, big.NewInt(a.TimeNs))
	}
	if extraNs != nil {
		pos.Add(pos, extraNs)
	}
	return pos, nil
}

// base returns the anchor's own epoch-nanosecond position.
func (a *Anchor) base() (*big.Int, error) {
	return a.position(0, 0, 0, 0, nil)
}

// endPosition returns the epoch-nanosecond position of anchor + d.
func (a *Anchor) endPosition(d Duration) (*big.Int, error) {
	return a.position(d.f.Years, d.f.Months, d.f.Weeks, d.f.Days, d.TimeNanos())
}

// unitPosition returns the position of the anchor shifted by count units
// of u (a date unit).
func (a *Anchor) unitPosition(u temporal.Unit, count int64) (*big.Int, error) {
	switch u {
	case temporal.UnitYear:
		return a.position(count, 0, 0, 0, nil)
	case temporal.UnitMonth:
		return a.position(0, count, 0, 0, nil)
	case temporal.UnitWeek:
		return a.position(0, 0, count, 0, nil)
	case temporal.UnitDay:
		return a.position(0, 0, 0, count, nil)
	}
	panic("duration: unitPosition requires a date unit")
}
