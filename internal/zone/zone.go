// Package zone resolves wall-clock times against time-zone offset data.
//
// The engine does not parse zone-rule files. All offset knowledge enters
// through the Provider interface, a pure function of (zone id, instant or
// wall-clock); package tzdb supplies the standard implementation backed by
// the platform tz database. Providers may be memoized by the caller.
//
// Wall-clock positions are passed as (epoch day, nanosecond of day) pairs.
// They are calendar-independent: a calendar only changes how an epoch day
// is named, not which instant it is.
package zone

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
)

// Provider supplies zone offset lookups. Implementations must behave as
// pure, side-effect-free functions of their arguments.
type Provider interface {
	// OffsetAt returns the UTC offset in seconds east in effect at t.
	OffsetAt(zoneID string, t exact.Time) (int, error)

	// CandidateOffsets returns the offsets under which the wall-clock
	// position is valid: one entry normally, two inside a backward
	// transition overlap, none inside a forward transition gap. Entries
	// are ordered by the resulting instant, earliest first.
	CandidateOffsets(zoneID string, epochDay int64, timeOfDayNs int64) ([]int, error)

	// NextTransition returns the closest instant strictly after (next) or
	// strictly before (previous) t at which the zone's offset changes,
	// or ok=false if none exists in that direction.
	NextTransition(zoneID string, t exact.Time, direction temporal.Direction) (exact.Time, bool, error)
}

// Resolver maps wall-clock tuples to exact times and back over a
// Provider, applying disambiguation and offset policies.
type Resolver struct {
	provider Provider
}

// NewResolver creates a Resolver over the given provider.
func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// Provider returns the underlying offset provider.
func (r *Resolver) Provider() Provider { return r.provider }

var bigNanosPerDay = big.NewInt(temporal.NanosPerDay)

// wallPosition returns the wall-clock position as nanoseconds from the
// epoch interpreted without any offset.
func wallPosition(epochDay, timeOfDayNs int64) *big.Int {
	pos := new(big.Int).Mul(big.NewInt(epochDay), bigNanosPerDay)
	return pos.Add(pos, big.NewInt(timeOfDayNs))
}

func instantForOffset(op string, epochDay, timeOfDayNs int64, offsetSec int) (exact.Time, error) {
	pos := wallPosition(epochDay, timeOfDayNs)
	pos.Sub(pos, new(big.Int).Mul(big.NewInt(int64(offsetSec)), big.NewInt(1_000_000_000)))
	t, err := exact.FromEpochNanoseconds(pos)
	if err != nil {
		return exact.Time{}, temporal.NewRangeError(op, "resolved instant outside supported range")
	}
	return t, nil
}

// ExactFor resolves a wall-clock position in a zone to an exact time,
// returning the chosen offset alongside.
//
// Inside a forward-transition gap no offset makes the wall time valid:
// compatible and later reinterpret the wall time under the offset in
// effect before the transition, which lands after the gap; earlier uses
// the post-transition offset, landing before it; reject fails. Inside a
// backward-transition overlap two offsets are valid: compatible and later
// select the later instant, earlier the earlier one, reject fails.
func (r *Resolver) ExactFor(zoneID string, epochDay, timeOfDayNs int64, dis temporal.Disambiguation) (exact.Time, int, error) {
	const op = "zone.ExactFor"
	cands, err := r.provider.CandidateOffsets(zoneID, epochDay, timeOfDayNs)
	if err != nil {
		return exact.Time{}, 0, err
	}
	switch len(cands) {
	case 1:
		t, err := instantForOffset(op, epochDay, timeOfDayNs, cands[0])
		return t, cands[0], err

	case 2:
		// Overlap: cands[0] yields the earlier instant.
		var offset int
		switch dis {
		case temporal.DisambiguationEarlier:
			offset = cands[0]
		case temporal.DisambiguationCompatible, temporal.DisambiguationLater:
			offset = cands[1]
		case temporal.DisambiguationReject:
			return exact.Time{}, 0, temporal.NewRangeError(op,
				"wall-clock time is repeated in zone %s", zoneID)
		}
		t, err := instantForOffset(op, epochDay, timeOfDayNs, offset)
		return t, offset, err

	case 0:
		if dis == temporal.DisambiguationReject {
			return exact.Time{}, 0, temporal.NewRangeError(op,
				"wall-clock time is skipped in zone %s", zoneID)
		}
		before, after, err := r.gapOffsets(zoneID, epochDay, timeOfDayNs)
		if err != nil {
			return exact.Time{}, 0, err
		}
		// Subtracting the pre-transition (smaller) offset lands after the
		// gap, the post-transition offset lands before it. The resolved
		// instant therefore sits on the other side of the transition from
		// the offset used to reinterpret the wall time, so the reported
		// offset is looked up at the instant itself.
		offset := before
		if dis == temporal.DisambiguationEarlier {
			offset = after
		}
		t, err := instantForOffset(op, epochDay, timeOfDayNs, offset)
		if err != nil {
			return exact.Time{}, 0, err
		}
		actual, err := r.provider.OffsetAt(zoneID, t)
		if err != nil {
			return exact.Time{}, 0, err
		}
		return t, actual, nil
	}
	return exact.Time{}, 0, temporal.NewRangeError(op,
		"provider returned %d candidate offsets for zone %s", len(cands), zoneID)
}

// gapOffsets returns the offsets in effect before and after the forward
// transition containing the (invalid) wall-clock position.
func (r *Resolver) gapOffsets(zoneID string, epochDay, timeOfDayNs int64) (before, after int, err error) {
	const op = "zone.ExactFor"
	const daySec = 86_400
	guessSec := epochDay*daySec + timeOfDayNs/1_000_000_000

	tBefore, err := exact.FromUnix(guessSec-daySec, 0)
	if err != nil {
		return 0, 0, temporal.NewRangeError(op, "wall-clock position outside supported range")
	}
	tAfter, err := exact.FromUnix(guessSec+daySec, 0)
	if err != nil {
		return 0, 0, temporal.NewRangeError(op, "wall-clock position outside supported range")
	}
	before, err = r.provider.OffsetAt(zoneID, tBefore)
	if err != nil {
		return 0, 0, err
	}
	after, err = r.provider.OffsetAt(zoneID, tAfter)
	if err != nil {
		return 0, 0, err
	}
	return before, after, nil
}

// ExactForWithOffset resolves a wall-clock position that carries an
// explicit UTC offset. The offset policy governs precedence between the
// given offset and zone-derived resolution.
func (r *Resolver) ExactForWithOffset(zoneID string, epochDay, timeOfDayNs int64, offsetSec int, policy temporal.OffsetPolicy, dis temporal.Disambiguation) (exact.Time, error) {
	const op = "zone.ExactForWithOffset"
	switch policy {
	case temporal.OffsetUse:
		return instantForOffset(op, epochDay, timeOfDayNs, offsetSec)

	case temporal.OffsetIgnore:
		t, _, err := r.ExactFor(zoneID, epochDay, timeOfDayNs, dis)
		return t, err

	case temporal.OffsetPrefer, temporal.OffsetReject:
		cands, err := r.provider.CandidateOffsets(zoneID, epochDay, timeOfDayNs)
		if err != nil {
			return exact.Time{}, err
		}
		for _, c := range cands {
			if c == offsetSec {
				return instantForOffset(op, epochDay, timeOfDayNs, c)
			}
		}
		if policy == temporal.OffsetReject {
			return exact.Time{}, temporal.NewRangeError(op,
				"offset %+d seconds is not valid for zone %s at the given wall-clock time", offsetSec, zoneID)
		}
		t, _, err := r.ExactFor(zoneID, epochDay, timeOfDayNs, dis)
		return t, err
	}
	return exact.Time{}, temporal.NewTypeError(op, "unrecognized offset policy %v", policy)
}

// WallFor maps an exact time to its wall-clock position in a zone. This
// direction is always unambiguous.
func (r *Resolver) WallFor(zoneID string, t exact.Time) (offsetSec int, epochDay int64, timeOfDayNs int64, err error) {
	offsetSec, err = r.provider.OffsetAt(zoneID, t)
	if err != nil {
		return 0, 0, 0, err
	}
	local := t.EpochNanoseconds()
	local.Add(local, new(big.Int).Mul(big.NewInt(int64(offsetSec)), big.NewInt(1_000_000_000)))

	day := new(big.Int)
	rem := new(big.Int)
	day.QuoRem(local, bigNanosPerDay, rem)
	if rem.Sign() < 0 {
		day.Sub(day, big.NewInt(1))
		rem.Add(rem, bigNanosPerDay)
	}
	return offsetSec, day.Int64(), rem.Int64(), nil
}

// NextTransition returns the closest offset transition of the zone in the
// given direction, or ok=false for zones whose offset never changes.
func (r *Resolver) NextTransition(zoneID string, t exact.Time, direction temporal.Direction) (exact.Time, bool, error) {
	return r.provider.NextTransition(zoneID, t, direction)
}
