package calendar

import (
	"fmt"

	"github.com/tempuslib/tempus/internal/temporal"
)

const isoID = "iso8601"

// ISO is the ISO 8601 proleptic Gregorian calendar: twelve fixed months,
// leap day in February, ISO week numbering with 52- and 53-week years, no
// eras. It is the default and always-registered calendar.
type ISO struct{}

// ID returns "iso8601".
func (ISO) ID() string { return isoID }

var isoMonthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isoIsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the day count of the month, 29 for February of a
// leap year. Month must be in 1..12; out-of-range months are the caller's
// bug and panic.
func (ISO) DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("iso8601: month %d out of range", month))
	}
	if month == 2 && isoIsLeap(year) {
		return 29
	}
	return isoMonthDays[month]
}

// MonthsInYear returns 12 for every ISO year.
func (ISO) MonthsInYear(int) int { return 12 }

func isoDaysInYear(year int) int {
	if isoIsLeap(year) {
		return 366
	}
	return 365
}

// floorDiv is floored integer division (quotient rounds toward negative
// infinity).
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// epochDayFromCivil converts a proleptic Gregorian date to days since
// 1970-01-01, via the era decomposition over 400-year cycles.
func epochDayFromCivil(year int, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	mp := int64((month + 9) % 12)
	doy := (153*mp+2)/5 + int64(day) - 1 // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromEpochDay is the inverse of epochDayFromCivil.
func civilFromEpochDay(day int64) (year, month, dom int) {
	z := day + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// isoDayOfWeek returns the ISO day of week (1=Monday .. 7=Sunday).
// Epoch day 0 (1970-01-01) is a Thursday.
func isoDayOfWeek(day int64) int {
	return int(floorMod(day+3, 7)) + 1
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// isoWeeksInYear returns 52 or 53 per the ISO rule: a year has 53 weeks
// iff January 1 is a Thursday, or a Wednesday in a leap year.
func isoWeeksInYear(year int) int {
	jan1 := isoDayOfWeek(epochDayFromCivil(year, 1, 1))
	if jan1 == 4 || (jan1 == 3 && isoIsLeap(year)) {
		return 53
	}
	return 52
}

// FieldsFromEpochDay derives the complete ISO field set.
func (c ISO) FieldsFromEpochDay(day int64) Fields {
	year, month, dom := civilFromEpochDay(day)
	doy := int(day-epochDayFromCivil(year, 1, 1)) + 1
	dow := isoDayOfWeek(day)

	week := (doy - dow + 10) / 7
	weekYear := year
	switch {
	case week < 1:
		weekYear = year - 1
		week = isoWeeksInYear(weekYear)
	case week > isoWeeksInYear(year):
		weekYear = year + 1
		week = 1
	}

	return Fields{
		Year:         year,
		Month:        month,
		MonthCode:    fmt.Sprintf("M%02d", month),
		Day:          dom,
		DayOfWeek:    dow,
		DayOfYear:    doy,
		WeekOfYear:   week,
		YearOfWeek:   weekYear,
		HasWeek:      true,
		DaysInWeek:   7,
		DaysInMonth:  c.DaysInMonth(year, month),
		DaysInYear:   isoDaysInYear(year),
		MonthsInYear: 12,
		InLeapYear:   isoIsLeap(year),
	}
}

// resolveISOMonth reconciles the numeric month and monthCode inputs.
func resolveISOMonth(op string, in FieldInputs) (int, error) {
	month := in.Month
	if in.MonthCode != "" {
		mc := in.MonthCode
		valid := len(mc) == 3 && mc[0] == 'M' && mc[1] >= '0' && mc[1] <= '9' && mc[2] >= '0' && mc[2] <= '9'
		fromCode := 0
		if valid {
			fromCode = int(mc[1]-'0')*10 + int(mc[2]-'0')
		}
		if !valid || fromCode < 1 || fromCode > 12 {
			return 0, temporal.NewRangeError(op, "invalid monthCode %q for iso8601", mc)
		}
		if in.HasMonth && in.Month != fromCode {
			return 0, temporal.NewRangeError(op, "month %d disagrees with monthCode %q", in.Month, in.MonthCode)
		}
		return fromCode, nil
	}
	if !in.HasMonth {
		return 0, temporal.NewTypeError(op, "month or monthCode is required")
	}
	return month, nil
}

// EpochDayFromFields computes the epoch day for ISO fields. The ISO
// calendar has no eras; supplying one is rejected. Out-of-range month and
// day are clamped under constrain and rejected otherwise.
func (c ISO) EpochDayFromFields(in FieldInputs, overflow temporal.Overflow) (int64, error) {
	const op = "iso8601.dateFromFields"
	if in.HasEra {
		return 0, temporal.NewRangeError(op, "the iso8601 calendar has no eras")
	}
	if !in.HasYear {
		return 0, temporal.NewTypeError(op, "year is required")
	}
	if !in.HasDay {
		return 0, temporal.NewTypeError(op, "day is required")
	}
	month, err := resolveISOMonth(op, in)
	if err != nil {
		return 0, err
	}
	day := in.Day
	if month < 1 || month > 12 {
		if overflow == temporal.OverflowReject {
			return 0, temporal.NewRangeError(op, "month %d out of range 1..12", month)
		}
		month = clampInt(month, 1, 12)
	}
	if dim := c.DaysInMonth(in.Year, month); day < 1 || day > dim {
		if overflow == temporal.OverflowReject {
			return 0, temporal.NewRangeError(op, "day %d out of range 1..%d for %04d-%02d", day, dim, in.Year, month)
		}
		day = clampInt(day, 1, dim)
	}
	epochDay := epochDayFromCivil(in.Year, month, day)
	if epochDay > MaxEpochDay || epochDay < -MaxEpochDay {
		return 0, temporal.NewRangeError(op, "date outside supported range")
	}
	return epochDay, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddDate implements ISO date arithmetic. Years and months move through
// the month sequence with the day-of-month constrained (or rejected) to
// the target month's length; weeks and days shift whole days.
func (c ISO) AddDate(day int64, years, months, weeks, days int64, overflow temporal.Overflow) (int64, error) {
	const op = "iso8601.addDate"
	result := day
	if years != 0 || months != 0 {
		y, m, d := civilFromEpochDay(day)
		// Total month index from year 0, then redistribute.
		total := int64(y)*12 + int64(m-1) + years*12 + months
		ty := floorDiv(total, 12)
		tm := int(floorMod(total, 12)) + 1
		td := d
		if dim := c.DaysInMonth(int(ty), tm); td > dim {
			if overflow == temporal.OverflowReject {
				return 0, temporal.NewRangeError(op, "day %d out of range 1..%d for %04d-%02d", td, dim, ty, tm)
			}
			td = dim
		}
		result = epochDayFromCivil(int(ty), tm, td)
	}
	result += weeks*7 + days
	if result > MaxEpochDay || result < -MaxEpochDay {
		return 0, temporal.NewRangeError(op, "date outside supported range")
	}
	return result, nil
}

// DateUntil balances to - from into largestUnit. Whole months are counted
// by walking the month difference back until the intermediate date no
// longer overshoots the target, so 400 days into months asks the calendar
// about each month's length rather than assuming a fixed count.
func (c ISO) DateUntil(from, to int64, largestUnit temporal.Unit) (DateDiff, error) {
	const op = "iso8601.dateUntil"
	switch largestUnit {
	case temporal.UnitDay:
		return DateDiff{Days: to - from}, nil
	case temporal.UnitWeek:
		days := to - from
		return DateDiff{Weeks: days / 7, Days: days % 7}, nil
	case temporal.UnitMonth, temporal.UnitYear:
		// fall through
	default:
		return DateDiff{}, temporal.NewRangeError(op, "largest unit %s is not a date unit", largestUnit)
	}

	sign := int64(0)
	switch {
	case to > from:
		sign = 1
	case to < from:
		sign = -1
	default:
		return DateDiff{}, nil
	}

	y1, m1, _ := civilFromEpochDay(from)
	y2, m2, _ := civilFromEpochDay(to)
	months := int64(y2-y1)*12 + int64(m2-m1)

	mid, err := c.AddDate(from, 0, months, 0, 0, temporal.OverflowConstrain)
	if err != nil {
		return DateDiff{}, err
	}
	// Walk back while the candidate overshoots the target.
	for (mid-to)*sign > 0 {
		months -= sign
		mid, err = c.AddDate(from, 0, months, 0, 0, temporal.OverflowConstrain)
		if err != nil {
			return DateDiff{}, err
		}
	}
	days := to - mid

	diff := DateDiff{Months: months, Days: days}
	if largestUnit == temporal.UnitYear {
		diff.Years = months / 12
		diff.Months = months % 12
	}
	return diff, nil
}
