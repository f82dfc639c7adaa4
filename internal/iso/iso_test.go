package iso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempuslib/tempus/internal/duration"
	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
	"github.com/tempuslib/tempus/internal/values"
	"github.com/tempuslib/tempus/internal/zone"
	"github.com/tempuslib/tempus/internal/zone/tzdb"
)

func TestFormatPlainDate(t *testing.T) {
	d, err := values.NewPlainDate("iso8601", 2020, 2, 29, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", FormatPlainDate(d))

	bc, err := values.NewPlainDate("iso8601", -43, 3, 15, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "-000043-03-15", FormatPlainDate(bc))

	far, err := values.NewPlainDate("iso8601", 12020, 1, 1, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "+012020-01-01", FormatPlainDate(far))
}

func TestFormatPlainTimePrecision(t *testing.T) {
	pt, err := values.NewPlainTime(12, 30, 45, 500, 0, 0, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "12:30:45.500", FormatPlainTime(pt, PrecisionAuto))
	assert.Equal(t, "12:30:45", FormatPlainTime(pt, 0))
	assert.Equal(t, "12:30:45.5", FormatPlainTime(pt, 1))
	assert.Equal(t, "12:30:45.500000000", FormatPlainTime(pt, 9))

	whole, err := values.NewPlainTime(6, 0, 0, 0, 0, 0, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "06:00:00", FormatPlainTime(whole, PrecisionAuto))

	nano, err := values.NewPlainTime(0, 0, 0, 0, 0, 1, temporal.OverflowReject)
	require.NoError(t, err)
	assert.Equal(t, "00:00:00.000000001", FormatPlainTime(nano, PrecisionAuto))
}

func TestParsePlainDate(t *testing.T) {
	d, err := ParsePlainDate("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, 2, d.Month())
	assert.Equal(t, 29, d.Day())

	// Numbered fields come from the ISO projection regardless of any
	// trailing time portion.
	d, err = ParsePlainDate("2021-07-04T12:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 4, d.Day())

	d, err = ParsePlainDate("-000043-03-15")
	require.NoError(t, err)
	assert.Equal(t, -43, d.Year())

	for _, bad := range []string{
		"2021-02-29",
		"2021-13-01",
		"2021-1-01",
		"2021-01-01x",
		"2021-01-01Z",
		"2021-01",
	} {
		_, err := ParsePlainDate(bad)
		require.Error(t, err, bad)
		assert.True(t, temporal.IsRangeError(err), bad)
	}
}

func TestParsePlainTime(t *testing.T) {
	pt, err := ParsePlainTime("09:30:15.25")
	require.NoError(t, err)
	assert.Equal(t, 9, pt.Hour())
	assert.Equal(t, 30, pt.Minute())
	assert.Equal(t, 15, pt.Second())
	assert.Equal(t, 250, pt.Millisecond())

	pt, err = ParsePlainTime("T23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, pt.Hour())
	assert.Equal(t, 59, pt.Minute())

	pt, err = ParsePlainTime("2021-07-04T12:30:00")
	require.NoError(t, err)
	assert.Equal(t, 12, pt.Hour())

	for _, bad := range []string{
		"24:00",
		"09:60",
		"09:30:15.1234567890",
		"09:30Z",
	} {
		_, err := ParsePlainTime(bad)
		require.Error(t, err, bad)
	}
}

func TestParsePlainDateTime(t *testing.T) {
	dt, err := ParsePlainDateTime("2020-03-08T02:30:00")
	require.NoError(t, err)
	assert.Equal(t, 8, dt.Date().Day())
	assert.Equal(t, 2, dt.Time().Hour())

	// A bare date means midnight.
	dt, err = ParsePlainDateTime("2020-03-08")
	require.NoError(t, err)
	assert.Equal(t, 0, dt.Time().Hour())

	_, err = ParsePlainDateTime("2020-03-08T02:30:00Z")
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestParseYearMonthAndMonthDay(t *testing.T) {
	ym, err := ParsePlainYearMonth("2020-02")
	require.NoError(t, err)
	assert.Equal(t, 2020, ym.Year())
	assert.Equal(t, 2, ym.Month())
	assert.Equal(t, "2020-02", FormatPlainYearMonth(ym))

	md, err := ParsePlainMonthDay("02-29")
	require.NoError(t, err)
	assert.Equal(t, "M02", md.MonthCode())
	assert.Equal(t, 29, md.Day())
	assert.Equal(t, "02-29", FormatPlainMonthDay(md))

	md, err = ParsePlainMonthDay("--12-25")
	require.NoError(t, err)
	assert.Equal(t, 25, md.Day())

	md, err = ParsePlainMonthDay("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, "M02", md.MonthCode())

	_, err = ParsePlainMonthDay("13-01")
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestInstantRoundTrip(t *testing.T) {
	at, err := exact.FromUnix(1_583_661_600, 0)
	require.NoError(t, err)
	s := FormatInstant(at, PrecisionAuto)
	assert.Equal(t, "2020-03-08T10:00:00Z", s)

	back, err := ParseInstant(s)
	require.NoError(t, err)
	assert.True(t, back.Equal(at))

	// Offsets shift the instant.
	shifted, err := ParseInstant("2020-03-08T02:00:00-08:00")
	require.NoError(t, err)
	assert.True(t, shifted.Equal(at))

	_, err = ParseInstant("2020-03-08T02:00:00")
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestAnnotations(t *testing.T) {
	d, err := ParsePlainDate("2020-02-29[u-ca=iso8601]")
	require.NoError(t, err)
	assert.Equal(t, "iso8601", d.CalendarID())

	// Unknown annotations are ignored unless critical-flagged.
	_, err = ParsePlainDate("2020-02-29[x-foo=bar]")
	require.NoError(t, err)

	_, err = ParsePlainDate("2020-02-29[!x-foo=bar]")
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	_, err = ParsePlainDate("2020-02-29[u-ca=iso8601][u-ca=iso8601]")
	require.Error(t, err)

	// An unregistered calendar annotation is a range error.
	_, err = ParsePlainDate("2020-02-29[u-ca=gregorian]")
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func laResolver() *zone.Resolver { return zone.NewResolver(tzdb.New()) }

func TestZonedRoundTrip(t *testing.T) {
	r := laResolver()

	z, err := ParseZonedDateTime("2020-11-01T01:30:00-08:00[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.NoError(t, err)
	assert.Equal(t, -8*3600, z.OffsetSeconds())
	assert.Equal(t, "2020-11-01T01:30:00-08:00[America/Los_Angeles]", FormatZonedDateTime(z, PrecisionAuto))

	// The other reading of the same wall time.
	z2, err := ParseZonedDateTime("2020-11-01T01:30:00-07:00[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.NoError(t, err)
	d, err := z2.Until(z, values.DifferenceOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Hours())
}

func TestParseZonedWithoutOffset(t *testing.T) {
	r := laResolver()

	z, err := ParseZonedDateTime("2020-03-08T02:30:00[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.NoError(t, err)
	assert.Equal(t, 3, z.Time().Hour()) // skipped time pushes forward

	_, err = ParseZonedDateTime("2020-03-08T02:30:00[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationReject)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestParseZonedOffsetPolicies(t *testing.T) {
	r := laResolver()

	// A stale offset under reject fails; under prefer it falls back to
	// disambiguation.
	_, err := ParseZonedDateTime("2020-06-15T12:00:00-08:00[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	z, err := ParseZonedDateTime("2020-06-15T12:00:00-08:00[America/Los_Angeles]",
		r, temporal.OffsetPrefer, temporal.DisambiguationCompatible)
	require.NoError(t, err)
	assert.Equal(t, -7*3600, z.OffsetSeconds())

	// Z fixes the instant directly.
	z, err = ParseZonedDateTime("2020-06-15T19:00:00Z[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.NoError(t, err)
	assert.Equal(t, 12, z.Time().Hour())

	_, err = ParseZonedDateTime("2020-06-15T12:00:00-07:00:30[America/Los_Angeles]",
		r, temporal.OffsetReject, temporal.DisambiguationCompatible)
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestDurationText(t *testing.T) {
	cases := []struct {
		text   string
		fields duration.Fields
	}{
		{"P1Y2M3W4DT5H6M7S", duration.Fields{Years: 1, Months: 2, Weeks: 3, Days: 4, Hours: 5, Minutes: 6, Seconds: 7}},
		{"PT90M", duration.Fields{Minutes: 90}},
		{"P3D", duration.Fields{Days: 3}},
		{"PT1.5S", duration.Fields{Seconds: 1, Milliseconds: 500}},
		{"PT0.000000008S", duration.Fields{Nanoseconds: 8}},
		{"-P1DT2H", duration.Fields{Days: -1, Hours: -2}},
		{"PT0S", duration.Fields{}},
	}
	for _, tc := range cases {
		d, err := ParseDuration(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.fields, d.Fields(), tc.text)
		assert.Equal(t, tc.text, FormatDuration(d), tc.text)
	}
}

func TestFormatDurationCarriesSubsecondOverflow(t *testing.T) {
	cases := []struct {
		fields duration.Fields
		want   string
	}{
		{duration.Fields{Milliseconds: 1500}, "PT1.5S"},
		{duration.Fields{Seconds: 1, Milliseconds: 1500}, "PT2.5S"},
		{duration.Fields{Microseconds: 90_000_000}, "PT90S"},
		{duration.Fields{Milliseconds: 2500, Nanoseconds: 1}, "PT2.500000001S"},
		{duration.Fields{Milliseconds: -1500}, "-PT1.5S"},
	}
	for _, tc := range cases {
		d, err := duration.FromFields(tc.fields)
		require.NoError(t, err)
		got := FormatDuration(d)
		assert.Equal(t, tc.want, got)

		// The folded text must denote the same exact span.
		back, err := ParseDuration(got)
		require.NoError(t, err, got)
		assert.Equal(t, 0, d.TimeNanos().Cmp(back.TimeNanos()), got)
	}
}

func TestParseDurationLowercaseAndSigns(t *testing.T) {
	d, err := ParseDuration("pt2h30m")
	require.NoError(t, err)
	assert.Equal(t, duration.Fields{Hours: 2, Minutes: 30}, d.Fields())

	d, err = ParseDuration("+P1D")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Days())
}

func TestParseDurationFractionalHoursAndMinutes(t *testing.T) {
	cases := []struct {
		text   string
		fields duration.Fields
	}{
		{"PT0.5H", duration.Fields{Minutes: 30}},
		{"PT1.5H", duration.Fields{Hours: 1, Minutes: 30}},
		{"PT1.5M", duration.Fields{Minutes: 1, Seconds: 30}},
		{"PT1H0.5M", duration.Fields{Hours: 1, Seconds: 30}},
		{"PT0.000000001H", duration.Fields{Microseconds: 3, Nanoseconds: 600}},
		{"-PT0.5H", duration.Fields{Minutes: -30}},
	}
	for _, tc := range cases {
		d, err := ParseDuration(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.fields, d.Fields(), tc.text)
	}
}

func TestParseDurationRejectsMalformed(t *testing.T) {
	for _, bad := range []string{
		"",
		"P",
		"PT",
		"1Y",
		"P1H",
		"P1Y2Y",
		"PT0.5H30M", // nothing may follow a fractional component
		"PT1.5M30S",
		"P1D extra",
		"PT1.1234567890S",
	} {
		_, err := ParseDuration(bad)
		require.Error(t, err, bad)
		assert.True(t, temporal.IsRangeError(err), bad)
	}
}

func TestDurationRoundTripProperty(t *testing.T) {
	fields := []duration.Fields{
		{Years: 400, Days: 1},
		{Hours: -25, Minutes: -90},
		{Milliseconds: 1, Nanoseconds: 999},
		{Weeks: 52},
	}
	for _, f := range fields {
		d, err := duration.FromFields(f)
		require.NoError(t, err)
		back, err := ParseDuration(FormatDuration(d))
		require.NoError(t, err, FormatDuration(d))
		assert.Equal(t, d.Fields(), back.Fields())
	}
}
