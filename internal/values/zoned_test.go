package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempuslib/tempus/internal/calendar"
	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/zone"
	"github.com/tempuslib/tempus/internal/zone/tzdb"
)

const losAngeles = "America/Los_Angeles"

func laResolver() *zone.Resolver {
	return zone.NewResolver(tzdb.New())
}

func mustZoned(t *testing.T, r *zone.Resolver, zoneID string, year, month, day, hour, minute int, dis temporal.Disambiguation) ZonedDateTime {
	t.Helper()
	dt, err := NewPlainDateTime("iso8601", year, month, day, hour, minute, 0, 0, 0, 0, temporal.OverflowReject)
	require.NoError(t, err)
	z, err := ZonedFromDateTime(r, zoneID, dt, dis)
	require.NoError(t, err)
	return z
}

func TestZonedFromDateTimeGap(t *testing.T) {
	r := laResolver()

	// 2020-03-08 02:30 does not exist in Los Angeles. Compatible and
	// later land past the gap on 03:30-07:00, earlier before it on
	// 01:30-08:00.
	z := mustZoned(t, r, losAngeles, 2020, 3, 8, 2, 30, temporal.DisambiguationCompatible)
	assert.Equal(t, -7*3600, z.OffsetSeconds())
	assert.Equal(t, 3, z.Time().Hour())
	assert.Equal(t, 30, z.Time().Minute())

	later := mustZoned(t, r, losAngeles, 2020, 3, 8, 2, 30, temporal.DisambiguationLater)
	assert.True(t, later.Equal(z))

	earlier := mustZoned(t, r, losAngeles, 2020, 3, 8, 2, 30, temporal.DisambiguationEarlier)
	assert.Equal(t, -8*3600, earlier.OffsetSeconds())
	assert.Equal(t, 1, earlier.Time().Hour())
	assert.Equal(t, 30, earlier.Time().Minute())

	dt, err := NewPlainDateTime("iso8601", 2020, 3, 8, 2, 30, 0, 0, 0, 0, temporal.OverflowReject)
	require.NoError(t, err)
	_, err = ZonedFromDateTime(r, losAngeles, dt, temporal.DisambiguationReject)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestZonedFromDateTimeOverlap(t *testing.T) {
	r := laResolver()

	// 2020-11-01 01:30 occurs twice. Earlier picks the -07:00 reading,
	// compatible and later the -08:00 one.
	earlier := mustZoned(t, r, losAngeles, 2020, 11, 1, 1, 30, temporal.DisambiguationEarlier)
	assert.Equal(t, -7*3600, earlier.OffsetSeconds())

	compatible := mustZoned(t, r, losAngeles, 2020, 11, 1, 1, 30, temporal.DisambiguationCompatible)
	assert.Equal(t, -8*3600, compatible.OffsetSeconds())

	later := mustZoned(t, r, losAngeles, 2020, 11, 1, 1, 30, temporal.DisambiguationLater)
	assert.True(t, later.Equal(compatible))

	// Same wall clock, one hour apart in exact time.
	d, err := earlier.Until(later, DifferenceOptions{})
	require.NoError(t, err)
	assert.Equal(t, duration.Fields{Hours: 1}, d.Fields())
}

func TestZonedCachedFieldsConsistency(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 30, temporal.DisambiguationReject)

	back, err := NewZonedDateTime(r, z.CalendarID(), z.ZoneID(), z.ExactTime())
	require.NoError(t, err)
	assert.Equal(t, z.Fields(), back.Fields())
	assert.True(t, z.Time().Equal(back.Time()))
	assert.Equal(t, z.OffsetSeconds(), back.OffsetSeconds())
}

func TestZonedAddDayKeepsWallTime(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 3, 7, 12, 0, temporal.DisambiguationReject)

	got, err := z.Add(mustDuration(t, duration.Fields{Days: 1}), temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Time().Hour())
	assert.Equal(t, -7*3600, got.OffsetSeconds())

	// Only 23 hours of exact time elapsed across the spring-forward day.
	d, err := z.Until(got, DifferenceOptions{})
	require.NoError(t, err)
	assert.Equal(t, duration.Fields{Hours: 23}, d.Fields())
}

func TestZonedAddHoursIsExact(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 3, 8, 1, 0, temporal.DisambiguationReject)

	got, err := z.Add(mustDuration(t, duration.Fields{Hours: 2}), temporal.OverflowReject)
	require.NoError(t, err)
	// One wall hour is skipped, so two exact hours land on 04:00.
	assert.Equal(t, 4, got.Time().Hour())
}

func TestZonedUntilLargestDay(t *testing.T) {
	r := laResolver()
	a := mustZoned(t, r, losAngeles, 2020, 3, 7, 0, 0, temporal.DisambiguationReject)
	b := mustZoned(t, r, losAngeles, 2020, 3, 9, 0, 0, temporal.DisambiguationReject)

	d, err := a.Until(b, DifferenceOptions{LargestUnit: temporal.UnitDay})
	require.NoError(t, err)
	assert.Equal(t, duration.Fields{Days: 2}, d.Fields())

	d, err = a.Until(b, DifferenceOptions{})
	require.NoError(t, err)
	assert.Equal(t, duration.Fields{Hours: 47}, d.Fields())
}

func TestZonedUntilRequiresMatchingZones(t *testing.T) {
	r := laResolver()
	a := mustZoned(t, r, losAngeles, 2020, 3, 7, 0, 0, temporal.DisambiguationReject)
	b := mustZoned(t, r, "UTC", 2020, 3, 9, 0, 0, temporal.DisambiguationReject)

	_, err := a.Until(b, DifferenceOptions{LargestUnit: temporal.UnitDay})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	// Time-unit differences do not care about the zone.
	_, err = a.Until(b, DifferenceOptions{LargestUnit: temporal.UnitHour})
	require.NoError(t, err)
}

func TestZonedRoundDayUsesActualDayLength(t *testing.T) {
	r := laResolver()

	// The fall-back day is 25 hours long. 13:00 wall is 14 elapsed hours,
	// past the midpoint, so half-expand rounds up to the next midnight.
	z := mustZoned(t, r, losAngeles, 2020, 11, 1, 13, 0, temporal.DisambiguationReject)
	got, err := z.Round(temporal.UnitDay, 1, temporal.RoundHalfExpand)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Date().Day())
	assert.Equal(t, 0, got.Time().Hour())

	// 11:00 wall is only 12 of 25 elapsed hours and rounds down.
	z = mustZoned(t, r, losAngeles, 2020, 11, 1, 11, 0, temporal.DisambiguationReject)
	got, err = z.Round(temporal.UnitDay, 1, temporal.RoundHalfExpand)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Date().Day())
}

func TestZonedRoundTimeUnit(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 40, temporal.DisambiguationReject)

	got, err := z.Round(temporal.UnitHour, 1, temporal.RoundHalfExpand)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Time().Hour())
	assert.Equal(t, 0, got.Time().Minute())
}

func TestZonedWith(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 30, temporal.DisambiguationReject)

	got, err := z.With(calendar.FieldInputs{Day: 20, HasDay: true}, TimeFields{}, ZonedOptions{})
	require.NoError(t, err)
	assert.Equal(t, 20, got.Fields().Day)
	assert.Equal(t, 9, got.Time().Hour())

	got, err = z.With(calendar.FieldInputs{}, TimeFields{Hour: 23, HasHour: true}, ZonedOptions{})
	require.NoError(t, err)
	assert.Equal(t, 23, got.Time().Hour())
	assert.Equal(t, 30, got.Time().Minute())
}

func TestZonedWithPreservesOffsetInOverlap(t *testing.T) {
	r := laResolver()

	// Start in the earlier (-07:00) reading of the overlap, then change
	// only the minute. The prefer policy keeps the -07:00 reading.
	z := mustZoned(t, r, losAngeles, 2020, 11, 1, 1, 30, temporal.DisambiguationEarlier)
	got, err := z.With(calendar.FieldInputs{}, TimeFields{Minute: 45, HasMinute: true},
		ZonedOptions{Offset: temporal.OffsetPrefer})
	require.NoError(t, err)
	assert.Equal(t, -7*3600, got.OffsetSeconds())
	assert.Equal(t, 45, got.Time().Minute())
}

func TestZonedStartOfDay(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 30, temporal.DisambiguationReject)

	start, err := z.StartOfDay()
	require.NoError(t, err)
	assert.Equal(t, 0, start.Time().Hour())
	assert.Equal(t, 15, start.Fields().Day)

	// Sao Paulo's 2018 spring-forward skipped midnight: the day began
	// at 01:00.
	sp := mustZoned(t, r, "America/Sao_Paulo", 2018, 11, 4, 12, 0, temporal.DisambiguationReject)
	start, err = sp.StartOfDay()
	require.NoError(t, err)
	assert.Equal(t, 1, start.Time().Hour())
}

func TestZonedTimeZoneTransition(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 30, temporal.DisambiguationReject)

	next, ok, err := z.TimeZoneTransition(temporal.DirectionNext)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1_604_221_200), next.ExactTime().EpochSeconds())
	assert.Equal(t, 1, next.Time().Hour()) // 01:00-08:00, first post-transition second

	prev, ok, err := z.TimeZoneTransition(temporal.DirectionPrevious)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1_583_661_600), prev.ExactTime().EpochSeconds())

	utc := mustZoned(t, r, "UTC", 2020, 6, 15, 9, 30, temporal.DisambiguationReject)
	_, ok, err = utc.TimeZoneTransition(temporal.DirectionNext)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestZonedWithZone(t *testing.T) {
	r := laResolver()
	z := mustZoned(t, r, losAngeles, 2020, 6, 15, 9, 30, temporal.DisambiguationReject)

	utc, err := z.WithZone("UTC")
	require.NoError(t, err)
	assert.Equal(t, 16, utc.Time().Hour())
	assert.Equal(t, 0, CompareZoned(z, utc))
	assert.False(t, z.Equal(utc))
}
