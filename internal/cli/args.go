package cli

import (
	"strings"

	"github.com/tempuslib/tempus/internal/temporal"
)

// Operand kinds recognized from argument shape: a bracket means a zoned
// date-time, a T (or a time separator) means a plain date-time, a P
// prefix means a duration, anything else is a plain date.
const (
	kindDate     = "date"
	kindDateTime = "datetime"
	kindZoned    = "zoned"
	kindDuration = "duration"
)

func classifyOperand(s string) string {
	body := strings.TrimLeft(s, "+-")
	if len(body) > 0 && (body[0] == 'P' || body[0] == 'p') {
		return kindDuration
	}
	if strings.ContainsRune(s, '[') {
		return kindZoned
	}
	if strings.ContainsAny(s, "Tt") || strings.ContainsRune(s, ':') {
		return kindDateTime
	}
	return kindDate
}

func parseUnitFlag(s string) (temporal.Unit, error) {
	if s == "" {
		return temporal.UnitAuto, nil
	}
	return temporal.ParseUnit("cli", s, false)
}

func parseModeFlag(s string) (temporal.RoundingMode, error) {
	if s == "" {
		return temporal.RoundHalfExpand, nil
	}
	return temporal.ParseRoundingMode("cli", s)
}

func parseOverflowFlag(s string) (temporal.Overflow, error) {
	if s == "" {
		return temporal.OverflowConstrain, nil
	}
	return temporal.ParseOverflow("cli", s)
}

func parseDisambiguationFlag(s string) (temporal.Disambiguation, error) {
	if s == "" {
		return temporal.DisambiguationCompatible, nil
	}
	return temporal.ParseDisambiguation("cli", s)
}

func parseOffsetFlag(s string) (temporal.OffsetPolicy, error) {
	if s == "" {
		return temporal.OffsetReject, nil
	}
	return temporal.ParseOffsetPolicy("cli", s)
}
