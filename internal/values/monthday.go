package values

import (
	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/temporal"
)

// referenceISOYear anchors month-days that carry no year of their own.
// 1972 is a leap year, so February 29 is representable.
const referenceISOYear = 1972

// PlainMonthDay is a month and day with no year, such as a birthday or
// recurring holiday. It carries no arithmetic; combine it with a year via
// ToPlainDate.
type PlainMonthDay struct {
	d PlainDate
}

// NewPlainMonthDay constructs a month-day in the named calendar.
func NewPlainMonthDay(calendarID string, month, day int, overflow temporal.Overflow) (PlainMonthDay, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return monthDayFromFields(cal, calendar.FieldInputs{
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, overflow)
}

func monthDayFromFields(cal calendar.Calendar, in calendar.FieldInputs, overflow temporal.Overflow) (PlainMonthDay, error) {
	if !in.HasYear {
		in.Year, in.HasYear = referenceISOYear, true
	}
	epochDay, err := cal.EpochDayFromFields(in, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{d: newPlainDate(cal, epochDay)}, nil
}

func (md PlainMonthDay) MonthCode() string { return md.d.fields.MonthCode }
func (md PlainMonthDay) Day() int          { return md.d.fields.Day }

// CalendarID returns the calendar identifier.
func (md PlainMonthDay) CalendarID() string { return md.d.cal.ID() }

// ReferenceEpochDay returns the epoch day in the reference year.
func (md PlainMonthDay) ReferenceEpochDay() int64 { return md.d.epochDay }

// With replaces the present month/day fields.
func (md PlainMonthDay) With(in calendar.FieldInputs, overflow temporal.Overflow) (PlainMonthDay, error) {
	merged := mergeDateFields(md.d.fields, in)
	merged.Year, merged.HasYear = referenceISOYear, true
	return monthDayFromFields(md.d.cal, merged, overflow)
}

// ToPlainDate pins the month-day to a year.
func (md PlainMonthDay) ToPlainDate(year int, overflow temporal.Overflow) (PlainDate, error) {
	return DateFromFields(md.d.cal.ID(), calendar.FieldInputs{
		Year: year, HasYear: true,
		MonthCode: md.d.fields.MonthCode,
		Day:       md.d.fields.Day, HasDay: true,
	}, overflow)
}

// Equal reports whether two month-days name the same month and day in
// the same calendar.
func (md PlainMonthDay) Equal(other PlainMonthDay) bool { return md.d.Equal(other.d) }
