package temporal

import "fmt"

// Overflow controls how out-of-range calendar fields are handled during
// construction and arithmetic.
type Overflow int

const (
	// OverflowConstrain clamps an out-of-range day or month to the nearest
	// valid value for the target year/month.
	OverflowConstrain Overflow = iota

	// OverflowReject fails with a RangeError-kind error instead of
	// clamping.
	OverflowReject
)

// String returns the option-bag spelling of the overflow value.
func (o Overflow) String() string {
	switch o {
	case OverflowConstrain:
		return "constrain"
	case OverflowReject:
		return "reject"
	}
	return fmt.Sprintf("Overflow(%d)", int(o))
}

// ParseOverflow validates an overflow option string.
func ParseOverflow(op, s string) (Overflow, error) {
	switch s {
	case "constrain":
		return OverflowConstrain, nil
	case "reject":
		return OverflowReject, nil
	}
	return OverflowConstrain, NewTypeError(op, "unrecognized overflow option %q", s)
}

// Disambiguation selects an exact time when a wall-clock time maps to zero
// (gap) or two (overlap) instants across a zone offset transition.
type Disambiguation int

const (
	// DisambiguationCompatible behaves like earlier for gaps and later for
	// overlaps.
	DisambiguationCompatible Disambiguation = iota
	DisambiguationEarlier
	DisambiguationLater
	// DisambiguationReject fails with a RangeError-kind error whenever the
	// wall-clock time is ambiguous or invalid.
	DisambiguationReject
)

// String returns the option-bag spelling of the disambiguation value.
func (d Disambiguation) String() string {
	switch d {
	case DisambiguationCompatible:
		return "compatible"
	case DisambiguationEarlier:
		return "earlier"
	case DisambiguationLater:
		return "later"
	case DisambiguationReject:
		return "reject"
	}
	return fmt.Sprintf("Disambiguation(%d)", int(d))
}

// ParseDisambiguation validates a disambiguation option string.
func ParseDisambiguation(op, s string) (Disambiguation, error) {
	switch s {
	case "compatible":
		return DisambiguationCompatible, nil
	case "earlier":
		return DisambiguationEarlier, nil
	case "later":
		return DisambiguationLater, nil
	case "reject":
		return DisambiguationReject, nil
	}
	return DisambiguationCompatible, NewTypeError(op, "unrecognized disambiguation option %q", s)
}

// OffsetPolicy governs precedence when an explicit UTC offset accompanies a
// wall-clock time that is also annotated with a zone identifier.
type OffsetPolicy int

const (
	// OffsetUse trusts the given offset outright.
	OffsetUse OffsetPolicy = iota
	// OffsetPrefer uses the given offset only if it is currently valid for
	// the zone at that wall time, falling back to zone-derived resolution.
	OffsetPrefer
	// OffsetIgnore always recomputes the offset from the zone.
	OffsetIgnore
	// OffsetReject fails if the given offset is not valid for the zone.
	OffsetReject
)

// String returns the option-bag spelling of the offset policy.
func (p OffsetPolicy) String() string {
	switch p {
	case OffsetUse:
		return "use"
	case OffsetPrefer:
		return "prefer"
	case OffsetIgnore:
		return "ignore"
	case OffsetReject:
		return "reject"
	}
	return fmt.Sprintf("OffsetPolicy(%d)", int(p))
}

// ParseOffsetPolicy validates an offset option string.
func ParseOffsetPolicy(op, s string) (OffsetPolicy, error) {
	switch s {
	case "use":
		return OffsetUse, nil
	case "prefer":
		return OffsetPrefer, nil
	case "ignore":
		return OffsetIgnore, nil
	case "reject":
		return OffsetReject, nil
	}
	return OffsetUse, NewTypeError(op, "unrecognized offset option %q", s)
}

// Direction selects which neighboring zone transition to find.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrevious
)

// String returns the option-bag spelling of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrevious:
		return "previous"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection validates a transition direction string.
func ParseDirection(op, s string) (Direction, error) {
	switch s {
	case "next":
		return DirectionNext, nil
	case "previous":
		return DirectionPrevious, nil
	}
	return DirectionNext, NewTypeError(op, "unrecognized direction %q", s)
}
