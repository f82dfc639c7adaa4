package values

import (
	"math/big"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/temporal"
)

// PlainDate is a calendar date with no time or zone attached. It is held
// canonically as an epoch day plus a calendar; all named fields are
// derived through the calendar and cached at construction.
type PlainDate struct {
	cal      calendar.Calendar
	epochDay int64
	fields   calendar.Fields
}

func newPlainDate(cal calendar.Calendar, epochDay int64) PlainDate {
	return PlainDate{cal: cal, epochDay: epochDay, fields: cal.FieldsFromEpochDay(epochDay)}
}

// NewPlainDate constructs a date from year/month/day in the named
// calendar's own numbering.
func NewPlainDate(calendarID string, year, month, day int, overflow temporal.Overflow) (PlainDate, error) {
	return DateFromFields(calendarID, calendar.FieldInputs{
		Year: year, HasYear: true,
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, overflow)
}

// DateFromFields constructs a date from a partial field set; the calendar
// decides which combinations are sufficient.
func DateFromFields(calendarID string, in calendar.FieldInputs, overflow temporal.Overflow) (PlainDate, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return PlainDate{}, err
	}
	epochDay, err := cal.EpochDayFromFields(in, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(cal, epochDay), nil
}

// DateFromEpochDay constructs a date at a day offset from 1970-01-01.
func DateFromEpochDay(calendarID string, epochDay int64) (PlainDate, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return PlainDate{}, err
	}
	if epochDay > calendar.MaxEpochDay || epochDay < -calendar.MaxEpochDay {
		return PlainDate{}, temporal.NewRangeError("date.New",
			"epoch day %d is out of the supported range", epochDay)
	}
	return newPlainDate(cal, epochDay), nil
}

// EpochDay returns the date's offset in days from 1970-01-01.
func (d PlainDate) EpochDay() int64 { return d.epochDay }

// Calendar returns the date's calendar.
func (d PlainDate) Calendar() calendar.Calendar { return d.cal }

// CalendarID returns the calendar identifier.
func (d PlainDate) CalendarID() string { return d.cal.ID() }

// Fields returns the full derived calendar field set.
func (d PlainDate) Fields() calendar.Fields { return d.fields }

func (d PlainDate) Year() int         { return d.fields.Year }
func (d PlainDate) Month() int        { return d.fields.Month }
func (d PlainDate) MonthCode() string { return d.fields.MonthCode }
func (d PlainDate) Day() int          { return d.fields.Day }
func (d PlainDate) DayOfWeek() int    { return d.fields.DayOfWeek }
func (d PlainDate) DayOfYear() int    { return d.fields.DayOfYear }
func (d PlainDate) DaysInMonth() int  { return d.fields.DaysInMonth }
func (d PlainDate) DaysInYear() int   { return d.fields.DaysInYear }
func (d PlainDate) InLeapYear() bool  { return d.fields.InLeapYear }

// mergeDateFields overlays the present input fields onto the current
// derived fields. A supplied month or monthCode replaces both.
func mergeDateFields(cur calendar.Fields, in calendar.FieldInputs) calendar.FieldInputs {
	merged := calendar.FieldInputs{
		Year: cur.Year, HasYear: true,
		Day: cur.Day, HasDay: true,
	}
	if in.HasYear {
		merged.Year = in.Year
	}
	if in.HasEra {
		merged.Era, merged.EraYear, merged.HasEra = in.Era, in.EraYear, true
	}
	if in.HasMonth || in.MonthCode != "" {
		merged.Month, merged.HasMonth = in.Month, in.HasMonth
		merged.MonthCode = in.MonthCode
	} else {
		merged.Month, merged.HasMonth = cur.Month, true
	}
	if in.HasDay {
		merged.Day = in.Day
	}
	return merged
}

// With replaces the present fields and reconstructs the date.
func (d PlainDate) With(in calendar.FieldInputs, overflow temporal.Overflow) (PlainDate, error) {
	epochDay, err := d.cal.EpochDayFromFields(mergeDateFields(d.fields, in), overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(d.cal, epochDay), nil
}

// WithCalendar reinterprets the same day under another calendar.
func (d PlainDate) WithCalendar(calendarID string) (PlainDate, error) {
	cal, err := calendar.Get(calendarID)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(cal, d.epochDay), nil
}

// Add moves the date by a duration. Calendar units move through the
// calendar; the duration's time portion contributes only whole 24-hour
// days, truncated toward zero.
func (d PlainDate) Add(dur duration.Duration, overflow temporal.Overflow) (PlainDate, error) {
	extra := new(big.Int).Quo(dur.TimeNanos(), big.NewInt(temporal.NanosPerDay))
	if !extra.IsInt64() {
		return PlainDate{}, temporal.NewRangeError("date.add", "duration out of range")
	}
	days, err := addChecked("date.add", dur.Days(), extra.Int64())
	if err != nil {
		return PlainDate{}, err
	}
	epochDay, err := d.cal.AddDate(d.epochDay, dur.Years(), dur.Months(), dur.Weeks(), days, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(d.cal, epochDay), nil
}

// Subtract moves the date backward by the duration.
func (d PlainDate) Subtract(dur duration.Duration, overflow temporal.Overflow) (PlainDate, error) {
	return d.Add(dur.Negated(), overflow)
}

func addChecked(op string, a, b int64) (int64, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, temporal.NewRangeError(op, "integer overflow in day arithmetic")
	}
	return s, nil
}

// Until returns the difference from d to other, balanced to the
// requested largest unit (default days). Both dates must share a
// calendar.
func (d PlainDate) Until(other PlainDate, opts DifferenceOptions) (duration.Duration, error) {
	const op = "date.until"
	if d.cal.ID() != other.cal.ID() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"cannot subtract dates in calendars %s and %s", other.cal.ID(), d.cal.ID())
	}
	largest := opts.LargestUnit
	if largest == temporal.UnitAuto {
		largest = temporal.UnitDay
	}
	if !largest.IsDateUnit() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"largest unit %s is not usable with dates", largest)
	}
	if opts.SmallestUnit != temporal.UnitAuto && !opts.SmallestUnit.IsDateUnit() {
		return duration.Duration{}, temporal.NewRangeError(op,
			"smallest unit %s is not usable with dates", opts.SmallestUnit)
	}
	diff, err := d.cal.DateUntil(d.epochDay, other.epochDay, largest)
	if err != nil {
		return duration.Duration{}, err
	}
	dur, err := duration.FromFields(duration.Fields{
		Years:  diff.Years,
		Months: diff.Months,
		Weeks:  diff.Weeks,
		Days:   diff.Days,
	})
	if err != nil {
		return duration.Duration{}, err
	}
	if !opts.wantsRounding() {
		return dur, nil
	}
	return dur.Round(duration.RoundOptions{
		LargestUnit:  largest,
		SmallestUnit: opts.SmallestUnit,
		Increment:    opts.Increment,
		Mode:         opts.Mode,
		RelativeTo:   duration.NewAnchor(d.cal, d.epochDay, 0),
	})
}

// Since returns the difference from other to d.
func (d PlainDate) Since(other PlainDate, opts DifferenceOptions) (duration.Duration, error) {
	return other.Until(d, opts)
}

// CompareDates orders two dates by their position on the timeline,
// independent of calendar.
func CompareDates(a, b PlainDate) int {
	switch {
	case a.epochDay < b.epochDay:
		return -1
	case a.epochDay > b.epochDay:
		return 1
	}
	return 0
}

// Equal reports whether two dates name the same day in the same
// calendar.
func (d PlainDate) Equal(other PlainDate) bool {
	return d.epochDay == other.epochDay && d.cal.ID() == other.cal.ID()
}

// ToPlainDateTime pairs the date with a wall-clock time.
func (d PlainDate) ToPlainDateTime(t PlainTime) PlainDateTime {
	return PlainDateTime{date: d, time: t}
}

// ToPlainYearMonth drops the day.
func (d PlainDate) ToPlainYearMonth() (PlainYearMonth, error) {
	return yearMonthFromFields(d.cal, calendar.FieldInputs{
		Year: d.fields.Year, HasYear: true,
		MonthCode: d.fields.MonthCode,
	}, temporal.OverflowReject)
}

// ToPlainMonthDay drops the year.
func (d PlainDate) ToPlainMonthDay() (PlainMonthDay, error) {
	return monthDayFromFields(d.cal, calendar.FieldInputs{
		MonthCode: d.fields.MonthCode,
		Day:       d.fields.Day, HasDay: true,
	}, temporal.OverflowReject)
}
