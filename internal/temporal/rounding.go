package temporal

import (
	"fmt"
	"math/big"
)

// RoundingMode selects how a value sitting between two increment
// boundaries resolves. The nine modes mirror the option-bag spellings.
type RoundingMode int

const (
	// RoundHalfExpand resolves exact halfway ties away from zero. It is
	// the zero value, and so the default mode everywhere an option bag
	// leaves the mode unset.
	RoundHalfExpand RoundingMode = iota
	// RoundCeil rounds unconditionally toward positive infinity.
	RoundCeil
	// RoundFloor rounds unconditionally toward negative infinity.
	RoundFloor
	// RoundExpand rounds away from zero.
	RoundExpand
	// RoundTrunc rounds toward zero.
	RoundTrunc
	// RoundHalfCeil resolves exact halfway ties toward positive infinity.
	RoundHalfCeil
	// RoundHalfFloor resolves exact halfway ties toward negative infinity.
	RoundHalfFloor
	// RoundHalfTrunc resolves exact halfway ties toward zero.
	RoundHalfTrunc
	// RoundHalfEven resolves exact halfway ties toward the even increment.
	RoundHalfEven
)

var roundingModeNames = map[RoundingMode]string{
	RoundCeil:       "ceil",
	RoundFloor:      "floor",
	RoundExpand:     "expand",
	RoundTrunc:      "trunc",
	RoundHalfCeil:   "halfCeil",
	RoundHalfFloor:  "halfFloor",
	RoundHalfExpand: "halfExpand",
	RoundHalfTrunc:  "halfTrunc",
	RoundHalfEven:   "halfEven",
}

// String returns the option-bag spelling of the mode.
func (m RoundingMode) String() string {
	if s, ok := roundingModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("RoundingMode(%d)", int(m))
}

// ParseRoundingMode validates a rounding mode string.
func ParseRoundingMode(op, s string) (RoundingMode, error) {
	for m, name := range roundingModeNames {
		if name == s {
			return m, nil
		}
	}
	return RoundTrunc, NewTypeError(op, "unrecognized rounding mode %q", s)
}

// RoundQuotient rounds the exact rational num/den to an integer per mode.
// den must be positive; num may be any sign. All arithmetic is exact.
func RoundQuotient(num, den *big.Int, mode RoundingMode) *big.Int {
	if den.Sign() <= 0 {
		panic("RoundQuotient: non-positive denominator")
	}
	floorQ := new(big.Int)
	rem := new(big.Int)
	floorQ.QuoRem(num, den, rem)
	if rem.Sign() < 0 {
		// Convert truncated division to floored division.
		floorQ.Sub(floorQ, big.NewInt(1))
		rem.Add(rem, den)
	}
	if rem.Sign() == 0 {
		return floorQ
	}
	ceilQ := new(big.Int).Add(floorQ, big.NewInt(1))
	negative := num.Sign() < 0

	useCeil := func() *big.Int { return ceilQ }
	useFloor := func() *big.Int { return floorQ }
	useTrunc := useFloor
	useExpand := useCeil
	if negative {
		useTrunc = useCeil
		useExpand = useFloor
	}

	switch mode {
	case RoundCeil:
		return useCeil()
	case RoundFloor:
		return useFloor()
	case RoundExpand:
		return useExpand()
	case RoundTrunc:
		return useTrunc()
	}

	// Half modes: compare 2*rem against den.
	twice := new(big.Int).Lsh(rem, 1)
	switch twice.Cmp(den) {
	case -1:
		return useFloor()
	case 1:
		return useCeil()
	}
	// Exact halfway tie.
	switch mode {
	case RoundHalfCeil:
		return useCeil()
	case RoundHalfFloor:
		return useFloor()
	case RoundHalfExpand:
		return useExpand()
	case RoundHalfTrunc:
		return useTrunc()
	case RoundHalfEven:
		if floorQ.Bit(0) == 0 {
			return useFloor()
		}
		return useCeil()
	}
	panic(fmt.Sprintf("RoundQuotient: unknown mode %v", mode))
}

// RoundToIncrement rounds x to the nearest multiple of increment per mode.
// increment must be positive. The result is a fresh big.Int.
func RoundToIncrement(x *big.Int, increment int64, mode RoundingMode) *big.Int {
	if increment == 1 {
		return new(big.Int).Set(x)
	}
	inc := big.NewInt(increment)
	q := RoundQuotient(x, inc, mode)
	return q.Mul(q, inc)
}

// RoundInt64ToIncrement is RoundToIncrement for values known to fit int64
// both before and after rounding.
func RoundInt64ToIncrement(x, increment int64, mode RoundingMode) int64 {
	return RoundToIncrement(big.NewInt(x), increment, mode).Int64()
}
