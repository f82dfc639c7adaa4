// Package system supplies the ambient clock, time zone, and calendar as
// an injected value. Nothing in this module reads wall-clock state
// globally; callers thread a System through instead, which keeps every
// "now"-dependent operation deterministic under test.
package system

import (
	"time"

	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/values"
	"github.com/tempuslib/tempus/internal/zone"
)

// System bundles the ambient inputs of now-dependent operations. The
// zero value behaves like Default(): the process clock, the local time
// zone, and the ISO calendar.
type System struct {
	// Clock returns the current exact time. Nil means the process
	// clock.
	Clock func() exact.Time

	// TimeZone is an IANA zone identifier or fixed-offset ID. Empty
	// means the process-local zone.
	TimeZone string

	// Calendar is a registered calendar identifier. Empty means
	// iso8601.
	Calendar string
}

// Default returns a System backed by the process clock and local zone.
func Default() System {
	return System{}
}

func processClock() exact.Time {
	now := time.Now()
	// The process clock is always far inside the representable range.
	at, _ := exact.FromUnix(now.Unix(), int64(now.Nanosecond()))
	return at
}

func localZoneID() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	// An unresolvable local zone degrades to UTC rather than failing.
	return "UTC"
}

func (s System) clock() func() exact.Time {
	if s.Clock != nil {
		return s.Clock
	}
	return processClock
}

func (s System) zoneID() string {
	if s.TimeZone != "" {
		return s.TimeZone
	}
	return localZoneID()
}

func (s System) calendarID() string {
	if s.Calendar != "" {
		return s.Calendar
	}
	return "iso8601"
}

// Now returns the current exact time.
func (s System) Now() exact.Time {
	return s.clock()()
}

// NowZoned projects the current exact time into the ambient zone and
// calendar.
func (s System) NowZoned(r *zone.Resolver) (values.ZonedDateTime, error) {
	return values.NewZonedDateTime(r, s.calendarID(), s.zoneID(), s.Now())
}

// Today returns the current date in the ambient zone and calendar.
func (s System) Today(r *zone.Resolver) (values.PlainDate, error) {
	z, err := s.NowZoned(r)
	if err != nil {
		return values.PlainDate{}, err
	}
	return z.Date(), nil
}
