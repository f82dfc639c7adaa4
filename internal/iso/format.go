// Package iso implements the textual boundary of the engine: ISO 8601 /
// RFC 9557 serialization and strict parsing for every composite value,
// and ISO 8601 duration text.
//
// Serialization always emits the extended format. Calendar systems other
// than iso8601 appear as a u-ca annotation; the named date fields in the
// text are always the ISO projection of the underlying epoch day, so a
// string never changes meaning when the annotation is stripped.
package iso

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/values"
)

// Precision selects how many fractional-second digits serialization
// emits. PrecisionAuto trims trailing zeros in three-digit groups;
// 0 through 9 emit exactly that many digits, truncating.
type Precision int

// PrecisionAuto is the default fractional-second precision.
const PrecisionAuto Precision = -1

func formatISOYear(year int) string {
	if year >= 0 && year <= 9999 {
		return fmt.Sprintf("%04d", year)
	}
	sign := "+"
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%06d", sign, year)
}

func isoFieldsOf(epochDay int64) calendar.Fields {
	return calendar.ISO{}.FieldsFromEpochDay(epochDay)
}

func formatDatePart(epochDay int64) string {
	f := isoFieldsOf(epochDay)
	return fmt.Sprintf("%s-%02d-%02d", formatISOYear(f.Year), f.Month, f.Day)
}

func formatCalendarSuffix(calendarID string) string {
	if calendarID == "iso8601" {
		return ""
	}
	return "[u-ca=" + calendarID + "]"
}

func formatFraction(subNs int64, prec Precision) string {
	if prec == PrecisionAuto {
		switch {
		case subNs == 0:
			return ""
		case subNs%1_000_000 == 0:
			return fmt.Sprintf(".%03d", subNs/1_000_000)
		case subNs%1_000 == 0:
			return fmt.Sprintf(".%06d", subNs/1_000)
		default:
			return fmt.Sprintf(".%09d", subNs)
		}
	}
	if prec == 0 {
		return ""
	}
	digits := fmt.Sprintf("%09d", subNs)
	return "." + digits[:prec]
}

func formatTimePart(t values.PlainTime, prec Precision) string {
	subNs := int64(t.Millisecond())*1_000_000 + int64(t.Microsecond())*1_000 + int64(t.Nanosecond())
	return fmt.Sprintf("%02d:%02d:%02d%s", t.Hour(), t.Minute(), t.Second(), formatFraction(subNs, prec))
}

// formatOffset renders a UTC offset rounded to the nearest minute, the
// form used for zoned date-times.
func formatOffset(offsetSec int) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	minutes := (offsetSec + 30) / 60
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatPlainDate serializes a date, annotating non-ISO calendars.
func FormatPlainDate(d values.PlainDate) string {
	return formatDatePart(d.EpochDay()) + formatCalendarSuffix(d.CalendarID())
}

// FormatPlainTime serializes a wall-clock time.
func FormatPlainTime(t values.PlainTime, prec Precision) string {
	return formatTimePart(t, prec)
}

// FormatPlainDateTime serializes a date-time.
func FormatPlainDateTime(dt values.PlainDateTime, prec Precision) string {
	return formatDatePart(dt.Date().EpochDay()) + "T" + formatTimePart(dt.Time(), prec) +
		formatCalendarSuffix(dt.Calendar().ID())
}

// FormatPlainYearMonth serializes a year-month.
func FormatPlainYearMonth(ym values.PlainYearMonth) string {
	f := isoFieldsOf(ym.ReferenceEpochDay())
	return fmt.Sprintf("%s-%02d", formatISOYear(f.Year), f.Month) + formatCalendarSuffix(ym.CalendarID())
}

// FormatPlainMonthDay serializes a month-day.
func FormatPlainMonthDay(md values.PlainMonthDay) string {
	f := isoFieldsOf(md.ReferenceEpochDay())
	return fmt.Sprintf("%02d-%02d", f.Month, f.Day) + formatCalendarSuffix(md.CalendarID())
}

// FormatInstant serializes an exact time in UTC with a Z designator.
func FormatInstant(t exact.Time, prec Precision) string {
	ns := t.EpochNanoseconds()
	day := new(big.Int)
	rem := new(big.Int)
	day.QuoRem(ns, big.NewInt(temporal.NanosPerDay), rem)
	if rem.Sign() < 0 {
		day.Sub(day, big.NewInt(1))
		rem.Add(rem, big.NewInt(temporal.NanosPerDay))
	}
	wall, _ := values.TimeFromNanosecondOfDay(rem.Int64())
	return formatDatePart(day.Int64()) + "T" + formatTimePart(wall, prec) + "Z"
}

// FormatZonedDateTime serializes a zoned date-time with its offset and
// bracketed zone identifier.
func FormatZonedDateTime(z values.ZonedDateTime, prec Precision) string {
	var b strings.Builder
	b.WriteString(formatDatePart(z.Date().EpochDay()))
	b.WriteByte('T')
	b.WriteString(formatTimePart(z.Time(), prec))
	b.WriteString(formatOffset(z.OffsetSeconds()))
	b.WriteByte('[')
	b.WriteString(z.ZoneID())
	b.WriteByte(']')
	b.WriteString(formatCalendarSuffix(z.CalendarID()))
	return b.String()
}

// FormatDuration serializes a duration to ISO 8601 text. Sub-second
// fields fold into a fractional seconds component with trailing zeros
// trimmed; the zero duration is PT0S.
func FormatDuration(d duration.Duration) string {
	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')

	abs := d.Abs()
	writePart := func(v int64, designator byte) {
		if v != 0 {
			fmt.Fprintf(&b, "%d%c", v, designator)
		}
	}
	writePart(abs.Years(), 'Y')
	writePart(abs.Months(), 'M')
	writePart(abs.Weeks(), 'W')
	writePart(abs.Days(), 'D')

	// Sub-second fields may each exceed their unit, so fold them in big
	// arithmetic and carry whole seconds into the seconds component.
	subNs := new(big.Int).Mul(big.NewInt(abs.Milliseconds()), big.NewInt(1_000_000))
	subNs.Add(subNs, new(big.Int).Mul(big.NewInt(abs.Microseconds()), big.NewInt(1_000)))
	subNs.Add(subNs, big.NewInt(abs.Nanoseconds()))
	seconds, frac := new(big.Int).QuoRem(subNs, big.NewInt(1_000_000_000), new(big.Int))
	seconds.Add(seconds, big.NewInt(abs.Seconds()))

	hasTime := abs.Hours() != 0 || abs.Minutes() != 0 || seconds.Sign() != 0 || frac.Sign() != 0
	if !hasTime && !abs.HasDateUnits() {
		return b.String() + "T0S"
	}
	if !hasTime {
		return b.String()
	}

	b.WriteByte('T')
	writePart(abs.Hours(), 'H')
	writePart(abs.Minutes(), 'M')
	if seconds.Sign() != 0 || frac.Sign() != 0 {
		b.WriteString(seconds.String())
		if frac.Sign() != 0 {
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", frac), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}
