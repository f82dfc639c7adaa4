package values

import (
	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/temporal"
)

// PlainYearMonth is a month of a particular year with no day. It is held
// as the month's first day, the reference day for all arithmetic.
type PlainYearMonth struct {
	d PlainDate
}

// NewPlainYearMonth constructs a year-month in the named calendar.
func NewPlainYearMonth(calendarID string, year, month int, overflow temporal.Overflow) (PlainYearMonth, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return yearMonthFromFields(cal, calendar.FieldInputs{
		Year: year, HasYear: true,
		Month: month, HasMonth: true,
	}, overflow)
}

func yearMonthFromFields(cal calendar.Calendar, in calendar.FieldInputs, overflow temporal.Overflow) (PlainYearMonth, error) {
	in.Day, in.HasDay = 1, true
	epochDay, err := cal.EpochDayFromFields(in, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{d: newPlainDate(cal, epochDay)}, nil
}

func (ym PlainYearMonth) Year() int         { return ym.d.fields.Year }
func (ym PlainYearMonth) Month() int        { return ym.d.fields.Month }
func (ym PlainYearMonth) MonthCode() string { return ym.d.fields.MonthCode }
func (ym PlainYearMonth) DaysInMonth() int  { return ym.d.fields.DaysInMonth }
func (ym PlainYearMonth) DaysInYear() int   { return ym.d.fields.DaysInYear }
func (ym PlainYearMonth) MonthsInYear() int { return ym.d.fields.MonthsInYear }
func (ym PlainYearMonth) InLeapYear() bool  { return ym.d.fields.InLeapYear }

// CalendarID returns the calendar identifier.
func (ym PlainYearMonth) CalendarID() string { return ym.d.cal.ID() }

// ReferenceEpochDay returns the epoch day of the month's first day.
func (ym PlainYearMonth) ReferenceEpochDay() int64 { return ym.d.epochDay }

// With replaces the present year/month fields.
func (ym PlainYearMonth) With(in calendar.FieldInputs, overflow temporal.Overflow) (PlainYearMonth, error) {
	merged := mergeDateFields(ym.d.fields, in)
	merged.Day, merged.HasDay = 1, true
	epochDay, err := ym.d.cal.EpochDayFromFields(merged, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{d: newPlainDate(ym.d.cal, epochDay)}, nil
}

// Add moves the year-month by whole years and months. Durations carrying
// any smaller unit are rejected.
func (ym PlainYearMonth) Add(dur duration.Duration, overflow temporal.Overflow) (PlainYearMonth, error) {
	if dur.Weeks() != 0 || dur.Days() != 0 || dur.TimeNanos().Sign() != 0 {
		return PlainYearMonth{}, temporal.NewRangeError("yearmonth.add",
			"only year and month units apply to a year-month")
	}
	epochDay, err := ym.d.cal.AddDate(ym.d.epochDay, dur.Years(), dur.Months(), 0, 0, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{d: newPlainDate(ym.d.cal, epochDay)}, nil
}

// Subtract moves the year-month backward.
func (ym PlainYearMonth) Subtract(dur duration.Duration, overflow temporal.Overflow) (PlainYearMonth, error) {
	return ym.Add(dur.Negated(), overflow)
}

// Until returns the whole-month difference from ym to other, balanced to
// years when requested (default years).
func (ym PlainYearMonth) Until(other PlainYearMonth, opts DifferenceOptions) (duration.Duration, error) {
	const op = "yearmonth.until"
	if ym.d.cal.ID() != other.d.cal.ID() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"cannot subtract year-months in calendars %s and %s", other.d.cal.ID(), ym.d.cal.ID())
	}
	largest := opts.LargestUnit
	if largest == temporal.UnitAuto {
		largest = temporal.UnitYear
	}
	if largest != temporal.UnitYear && largest != temporal.UnitMonth {
		return duration.Duration{}, temporal.NewRangeError(op,
			"largest unit %s is not usable with year-months", largest)
	}
	diff, err := ym.d.cal.DateUntil(ym.d.epochDay, other.d.epochDay, largest)
	if err != nil {
		return duration.Duration{}, err
	}
	return duration.FromFields(duration.Fields{Years: diff.Years, Months: diff.Months})
}

// Since returns the difference from other to ym.
func (ym PlainYearMonth) Since(other PlainYearMonth, opts DifferenceOptions) (duration.Duration, error) {
	return other.Until(ym, opts)
}

// ToPlainDate pairs the year-month with a day of month.
func (ym PlainYearMonth) ToPlainDate(day int, overflow temporal.Overflow) (PlainDate, error) {
	return DateFromFields(ym.d.cal.ID(), calendar.FieldInputs{
		Year: ym.d.fields.Year, HasYear: true,
		MonthCode: ym.d.fields.MonthCode,
		Day:       day, HasDay: true,
	}, overflow)
}

// CompareYearMonths orders two year-months on the timeline.
func CompareYearMonths(a, b PlainYearMonth) int { return CompareDates(a.d, b.d) }

// Equal reports whether two year-months name the same month in the same
// calendar.
func (ym PlainYearMonth) Equal(other PlainYearMonth) bool { return ym.d.Equal(other.d) }
