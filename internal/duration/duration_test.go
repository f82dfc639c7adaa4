package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/temporal"
)

func isoEpochDay(t *testing.T, year, month, day int) int64 {
	t.Helper()
	cal, err := calendar.Get("iso8601")
	require.NoError(t, err)
	d, err := cal.EpochDayFromFields(calendar.FieldInputs{
		Year: year, HasYear: true,
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, temporal.OverflowReject)
	require.NoError(t, err)
	return d
}

func isoAnchor(t *testing.T, year, month, day int) *Anchor {
	t.Helper()
	cal, err := calendar.Get("iso8601")
	require.NoError(t, err)
	return NewAnchor(cal, isoEpochDay(t, year, month, day), 0)
}

func TestFromFieldsSignInvariant(t *testing.T) {
	d, err := FromFields(Fields{Years: 1, Days: 2, Nanoseconds: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Sign())

	d, err = FromFields(Fields{Hours: -5, Nanoseconds: -1})
	require.NoError(t, err)
	assert.Equal(t, -1, d.Sign())

	d, err = FromFields(Fields{})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Sign())
	assert.True(t, d.IsZero())

	// Mixed-sign nonzero fields always fail with a RangeError-kind error.
	_, err = FromFields(Fields{Months: 1, Seconds: -1})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	_, err = FromFields(Fields{Years: -1, Nanoseconds: 1})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestNegatedAndAbs(t *testing.T) {
	d, err := FromFields(Fields{Days: -2, Hours: -3})
	require.NoError(t, err)
	n := d.Negated()
	assert.Equal(t, int64(2), n.Days())
	assert.Equal(t, int64(3), n.Hours())
	assert.Equal(t, 1, n.Sign())
	assert.Equal(t, n, d.Abs())
}

func TestLargestUnitCanonicalOrder(t *testing.T) {
	d, err := FromFields(Fields{Weeks: 2, Minutes: 5})
	require.NoError(t, err)
	assert.Equal(t, temporal.UnitWeek, d.LargestUnit())
	assert.Equal(t, temporal.UnitNanosecond, Zero().LargestUnit())
}

func TestRoundTimeOnly(t *testing.T) {
	d, err := FromFields(Fields{Minutes: 130})
	require.NoError(t, err)

	got, err := d.Round(RoundOptions{LargestUnit: temporal.UnitHour, SmallestUnit: temporal.UnitMinute})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Hours())
	assert.Equal(t, int64(10), got.Minutes())

	got, err = d.Round(RoundOptions{SmallestUnit: temporal.UnitHour})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Hours())
	assert.Equal(t, int64(0), got.Minutes())

	got, err = d.Round(RoundOptions{SmallestUnit: temporal.UnitHour, Mode: temporal.RoundCeil})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Hours())
}

func TestRoundRequiresAnchorForCalendarUnits(t *testing.T) {
	d, err := FromFields(Fields{Months: 2})
	require.NoError(t, err)
	_, err = d.Round(RoundOptions{SmallestUnit: temporal.UnitDay})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	nonCal, err := FromFields(Fields{Hours: 5})
	require.NoError(t, err)
	_, err = nonCal.Round(RoundOptions{SmallestUnit: temporal.UnitMonth})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestRoundRejectsBadIncrement(t *testing.T) {
	d, err := FromFields(Fields{Minutes: 10})
	require.NoError(t, err)
	_, err = d.Round(RoundOptions{SmallestUnit: temporal.UnitMinute, Increment: 7})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestRoundDaysIntoMonthsWalksCalendar(t *testing.T) {
	// 400 days from 2020-01-01: 13 whole months end at 2021-02-01
	// (397 days); the next month boundary is 2021-03-01 (425 days).
	d, err := FromFields(Fields{Days: 400})
	require.NoError(t, err)
	anchor := isoAnchor(t, 2020, 1, 1)

	got, err := d.Round(RoundOptions{
		LargestUnit:  temporal.UnitMonth,
		SmallestUnit: temporal.UnitMonth,
		Mode:         temporal.RoundTrunc,
		RelativeTo:   anchor,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.Months())
	assert.Equal(t, int64(0), got.Days())

	// 3 days into a 28-day month is well under halfway.
	got, err = d.Round(RoundOptions{
		LargestUnit:  temporal.UnitMonth,
		SmallestUnit: temporal.UnitMonth,
		RelativeTo:   anchor,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.Months())
}

func TestRoundBalancesIntoYears(t *testing.T) {
	d, err := FromFields(Fields{Months: 25})
	require.NoError(t, err)
	got, err := d.Round(RoundOptions{
		LargestUnit:  temporal.UnitYear,
		SmallestUnit: temporal.UnitMonth,
		RelativeTo:   isoAnchor(t, 2020, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Years())
	assert.Equal(t, int64(1), got.Months())
}

func TestRoundTimeUnitKeepsCalendarFields(t *testing.T) {
	d, err := FromFields(Fields{Months: 1, Hours: 25, Minutes: 31})
	require.NoError(t, err)
	got, err := d.Round(RoundOptions{
		LargestUnit:  temporal.UnitMonth,
		SmallestUnit: temporal.UnitHour,
		RelativeTo:   isoAnchor(t, 2020, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Months())
	assert.Equal(t, int64(1), got.Days())
	assert.Equal(t, int64(2), got.Hours())
	assert.Equal(t, int64(0), got.Minutes())
}

func TestRoundIdempotentSameOptions(t *testing.T) {
	d, err := FromFields(Fields{Days: 400, Hours: 7})
	require.NoError(t, err)
	opts := RoundOptions{
		LargestUnit:  temporal.UnitMonth,
		SmallestUnit: temporal.UnitDay,
		RelativeTo:   isoAnchor(t, 2020, 1, 1),
	}
	once, err := d.Round(opts)
	require.NoError(t, err)
	twice, err := once.Round(opts)
	require.NoError(t, err)
	assert.Equal(t, once.Fields(), twice.Fields())
}

func TestTotalFixedUnits(t *testing.T) {
	d, err := FromFields(Fields{Hours: 36})
	require.NoError(t, err)
	got, err := d.Total(temporal.UnitDay, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-12)

	got, err = d.Total(temporal.UnitMinute, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2160, got, 1e-9)
}

func TestTotalCalendarUnits(t *testing.T) {
	anchor := isoAnchor(t, 2020, 1, 1)

	oneMonth, err := FromFields(Fields{Months: 1})
	require.NoError(t, err)
	days, err := oneMonth.Total(temporal.UnitDay, anchor)
	require.NoError(t, err)
	assert.InDelta(t, 31.0, days, 1e-12) // January has 31 days

	d400, err := FromFields(Fields{Days: 400})
	require.NoError(t, err)
	months, err := d400.Total(temporal.UnitMonth, anchor)
	require.NoError(t, err)
	assert.InDelta(t, 13.0+3.0/28.0, months, 1e-9)

	_, err = oneMonth.Total(temporal.UnitDay, nil)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestTotalAgreesWithNanosecondRound(t *testing.T) {
	d, err := FromFields(Fields{Hours: 2, Minutes: 30, Nanoseconds: 17})
	require.NoError(t, err)
	rounded, err := d.Round(RoundOptions{SmallestUnit: temporal.UnitNanosecond})
	require.NoError(t, err)
	a, err := rounded.Total(temporal.UnitNanosecond, nil)
	require.NoError(t, err)
	b, err := d.Total(temporal.UnitNanosecond, nil)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestCompare(t *testing.T) {
	d30, err := FromFields(Fields{Days: 30})
	require.NoError(t, err)
	oneMonth, err := FromFields(Fields{Months: 1})
	require.NoError(t, err)

	// January is 31 days long; February 2020 has 29.
	got, err := Compare(d30, oneMonth, isoAnchor(t, 2020, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(d30, oneMonth, isoAnchor(t, 2020, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = Compare(d30, oneMonth, nil)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	got, err = Compare(oneMonth, oneMonth, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestAddPlainSum(t *testing.T) {
	a, err := FromFields(Fields{Hours: 1, Minutes: 10})
	require.NoError(t, err)
	b, err := FromFields(Fields{Minutes: 5, Seconds: 30})
	require.NoError(t, err)
	got, err := a.Add(b, nil)
	require.NoError(t, err)
	assert.Equal(t, Fields{Hours: 1, Minutes: 15, Seconds: 30}, got.Fields())
}

func TestAddMixedSignRebalances(t *testing.T) {
	a, err := FromFields(Fields{Hours: 1})
	require.NoError(t, err)
	b, err := FromFields(Fields{Minutes: -30})
	require.NoError(t, err)
	got, err := a.Add(b, nil)
	require.NoError(t, err)
	assert.Equal(t, Fields{Minutes: 30}, got.Fields())
}

func TestAddCalendarNeedsAnchorEvenForPlainSums(t *testing.T) {
	months, err := FromFields(Fields{Months: 1})
	require.NoError(t, err)
	day, err := FromFields(Fields{Days: 1})
	require.NoError(t, err)

	// The field-wise sum is well-formed, but a month still has no
	// length without a reference date.
	_, err = months.Add(day, nil)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	_, err = day.Add(months, nil)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	got, err := months.Add(day, isoAnchor(t, 2020, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, Fields{Months: 1, Days: 1}, got.Fields())
}

func TestAddCalendarMixedSignNeedsAnchor(t *testing.T) {
	months, err := FromFields(Fields{Months: 1})
	require.NoError(t, err)
	minusDay, err := FromFields(Fields{Days: -1})
	require.NoError(t, err)

	_, err = months.Add(minusDay, nil)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	got, err := months.Add(minusDay, isoAnchor(t, 2020, 1, 1))
	require.NoError(t, err)
	// 2020-01-01 + 1 month - 1 day = 2020-01-31: 0 months, 30 days.
	assert.Equal(t, int64(0), got.Months())
	assert.Equal(t, int64(30), got.Days())
}

func TestSubtract(t *testing.T) {
	a, err := FromFields(Fields{Hours: 2})
	require.NoError(t, err)
	b, err := FromFields(Fields{Minutes: 45})
	require.NoError(t, err)
	got, err := a.Subtract(b, nil)
	require.NoError(t, err)
	assert.Equal(t, Fields{Hours: 1, Minutes: 15}, got.Fields())
}
