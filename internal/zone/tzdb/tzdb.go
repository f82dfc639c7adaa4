// Package tzdb provides the standard zone.Provider, backed by the
// platform time-zone database through the Go runtime. It consumes
// compiled zone data only; it never parses zone-rule files itself.
//
// Offsets are probed through time.Location, which the runtime keeps
// immutable once loaded, so all lookups are pure functions of their
// arguments. Loaded locations are cached per DB.
package tzdb

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // fall back to the embedded database when the host has none

	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
)

const daySec = int64(86_400)

// transitionHorizonSec bounds the search for offset transitions to 1,000
// years on either side of the probe point. Zone rules project far beyond
// any realistic horizon via recurring rules, but the projection is
// periodic; scanning past it would never terminate usefully.
const transitionHorizonSec = 1000 * 365 * daySec

// DB is a zone.Provider over the platform tz database.
type DB struct {
	mu    sync.Mutex
	cache map[string]*time.Location
}

// New creates an empty DB. Locations load lazily on first use.
func New() *DB {
	return &DB{cache: make(map[string]*time.Location)}
}

// location loads and caches a named location. Fixed numeric identifiers
// like "+05:30" resolve to fixed zones without touching the database.
func (db *DB) location(zoneID string) (*time.Location, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if loc, ok := db.cache[zoneID]; ok {
		return loc, nil
	}
	var loc *time.Location
	if off, ok := parseFixedOffsetID(zoneID); ok {
		loc = time.FixedZone(zoneID, off)
	} else {
		var err error
		loc, err = time.LoadLocation(zoneID)
		if err != nil {
			return nil, temporal.NewRangeError("tzdb", "unknown time zone %q", zoneID)
		}
	}
	db.cache[zoneID] = loc
	return loc, nil
}

// parseFixedOffsetID recognizes ±HH:MM, ±HHMM, and ±HH identifiers and
// returns the offset in seconds.
func parseFixedOffsetID(id string) (int, bool) {
	if len(id) < 3 || (id[0] != '+' && id[0] != '-') {
		return 0, false
	}
	body := strings.ReplaceAll(id[1:], ":", "")
	if len(body) != 2 && len(body) != 4 {
		return 0, false
	}
	for _, c := range body {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	hours := int(body[0]-'0')*10 + int(body[1]-'0')
	minutes := 0
	if len(body) == 4 {
		minutes = int(body[2]-'0')*10 + int(body[3]-'0')
	}
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	off := hours*3600 + minutes*60
	if id[0] == '-' {
		off = -off
	}
	return off, true
}

// OffsetAt implements zone.Provider.
func (db *DB) OffsetAt(zoneID string, t exact.Time) (int, error) {
	loc, err := db.location(zoneID)
	if err != nil {
		return 0, err
	}
	return offsetAtUnix(loc, t.EpochSeconds()), nil
}

func offsetAtUnix(loc *time.Location, sec int64) int {
	_, off := time.Unix(sec, 0).In(loc).Zone()
	return off
}

// CandidateOffsets implements zone.Provider. The offsets in effect one
// day before and one day after the wall-clock position bracket any single
// transition; each bracket offset is kept only if applying it maps the
// wall time back to an instant where it is actually in effect.
func (db *DB) CandidateOffsets(zoneID string, epochDay int64, timeOfDayNs int64) ([]int, error) {
	loc, err := db.location(zoneID)
	if err != nil {
		return nil, err
	}
	wallSec := epochDay*daySec + timeOfDayNs/1_000_000_000

	probes := []int{
		offsetAtUnix(loc, wallSec-daySec),
		offsetAtUnix(loc, wallSec+daySec),
	}
	var candidates []int
	for _, off := range probes {
		if offsetAtUnix(loc, wallSec-int64(off)) != off {
			continue
		}
		dup := false
		for _, c := range candidates {
			if c == off {
				dup = true
			}
		}
		if !dup {
			candidates = append(candidates, off)
		}
	}
	// Earliest resulting instant first: larger offsets resolve earlier.
	if len(candidates) == 2 && candidates[0] < candidates[1] {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	return candidates, nil
}

// NextTransition implements zone.Provider. The offset timeline is scanned
// in one-day strides until it changes, then the exact boundary is found
// by bisection to one-second precision. Transitions in the tz database
// always fall on whole seconds and never less than a day apart, so a
// paired transition that restores the previous offset (as with zones
// that suspend DST mid-season) cannot hide inside a stride.
func (db *DB) NextTransition(zoneID string, t exact.Time, direction temporal.Direction) (exact.Time, bool, error) {
	loc, err := db.location(zoneID)
	if err != nil {
		return exact.Time{}, false, err
	}

	step := daySec
	if direction == temporal.DirectionPrevious {
		step = -step
	}

	start := t.EpochSeconds()
	if direction == temporal.DirectionPrevious && t.NanosecondOfSecond() == 0 {
		// A transition exactly at t must not be returned for "previous".
		start--
	}
	base := offsetAtUnix(loc, start)

	limit := start + transitionHorizonSec
	if direction == temporal.DirectionPrevious {
		limit = start - transitionHorizonSec
	}

	prev := start
	for cur := start + step; ; cur += step {
		if (step > 0 && cur > limit) || (step < 0 && cur < limit) {
			cur = limit
		}
		if offsetAtUnix(loc, cur) != base {
			sec := bisectTransition(loc, prev, cur, base, direction)
			tt, err := exact.FromUnix(sec, 0)
			if err != nil {
				return exact.Time{}, false, nil
			}
			return tt, true, nil
		}
		if cur == limit {
			return exact.Time{}, false, nil
		}
		prev = cur
	}
}

// bisectTransition narrows [a, b] (or [b, a] when scanning backward) to
// the first second carrying the post-transition offset.
func bisectTransition(loc *time.Location, a, b int64, base int, direction temporal.Direction) int64 {
	lo, hi := a, b
	if direction == temporal.DirectionPrevious {
		lo, hi = b, a
	}
	// Invariant: offset(lo) == base iff scanning forward from lo side;
	// normalize so offset(lo) == base and offset(hi) != base.
	if offsetAtUnix(loc, lo) != base {
		// Backward scan: lo side is beyond the transition. The boundary is
		// the first second where the offset becomes base's predecessor's
		// successor; searching for first second != offset(lo) from lo.
		target := offsetAtUnix(loc, lo)
		for hi-lo > 1 {
			mid := lo + (hi-lo)/2
			if offsetAtUnix(loc, mid) == target {
				lo = mid
			} else {
				hi = mid
			}
		}
		return hi
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if offsetAtUnix(loc, mid) == base {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
