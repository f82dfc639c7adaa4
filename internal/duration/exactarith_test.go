package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempuslib/tempus/internal/exact"
	"github.com/tempuslib/tempus/internal/temporal"
)

func TestAddExact(t *testing.T) {
	base, err := exact.FromUnix(1_000_000, 0)
	require.NoError(t, err)

	d, err := FromFields(Fields{Hours: 1, Seconds: 30})
	require.NoError(t, err)
	got, err := AddExact(base, d)
	require.NoError(t, err)
	assert.Equal(t, int64(1_003_630), got.EpochSeconds())

	back, err := SubtractExact(got, d)
	require.NoError(t, err)
	assert.Equal(t, 0, exact.Compare(base, back))
}

func TestAddExactRejectsDateUnits(t *testing.T) {
	base, err := exact.FromUnix(0, 0)
	require.NoError(t, err)

	for _, f := range []Fields{
		{Years: 1},
		{Months: 1},
		{Weeks: 1},
		{Days: 1},
	} {
		d, err := FromFields(f)
		require.NoError(t, err)
		_, err = AddExact(base, d)
		require.Error(t, err)
		assert.True(t, temporal.IsRangeError(err))
	}
}

func TestExactUntilDefaultsToSeconds(t *testing.T) {
	a, err := exact.FromUnix(0, 0)
	require.NoError(t, err)
	b, err := exact.FromUnix(90_061, 500_000_000)
	require.NoError(t, err)

	got, err := ExactUntil(a, b, RoundOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(90_061), got.Seconds())
	assert.Equal(t, int64(500), got.Milliseconds())
	assert.Equal(t, int64(0), got.Hours())
}

func TestExactUntilLargestHour(t *testing.T) {
	a, err := exact.FromUnix(0, 0)
	require.NoError(t, err)
	b, err := exact.FromUnix(90_061, 0)
	require.NoError(t, err)

	got, err := ExactUntil(a, b, RoundOptions{LargestUnit: temporal.UnitHour})
	require.NoError(t, err)
	assert.Equal(t, Fields{Hours: 25, Minutes: 1, Seconds: 1}, got.Fields())
}

func TestExactUntilRounds(t *testing.T) {
	a, err := exact.FromUnix(0, 0)
	require.NoError(t, err)
	b, err := exact.FromUnix(0, 1_500_000)
	require.NoError(t, err)

	got, err := ExactUntil(a, b, RoundOptions{
		LargestUnit:  temporal.UnitMillisecond,
		SmallestUnit: temporal.UnitMillisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Milliseconds())

	got, err = ExactUntil(a, b, RoundOptions{
		LargestUnit:  temporal.UnitMillisecond,
		SmallestUnit: temporal.UnitMillisecond,
		Mode:         temporal.RoundTrunc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Milliseconds())
}

func TestExactUntilRejectsDateUnits(t *testing.T) {
	a, err := exact.FromUnix(0, 0)
	require.NoError(t, err)
	b, err := exact.FromUnix(60, 0)
	require.NoError(t, err)

	_, err = ExactUntil(a, b, RoundOptions{LargestUnit: temporal.UnitDay})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))

	_, err = ExactUntil(a, b, RoundOptions{SmallestUnit: temporal.UnitMonth})
	require.Error(t, err)
	assert.True(t, temporal.IsRangeError(err))
}

func TestExactSinceMirrorsUntil(t *testing.T) {
	a, err := exact.FromUnix(100, 0)
	require.NoError(t, err)
	b, err := exact.FromUnix(160, 0)
	require.NoError(t, err)

	since, err := ExactSince(b, a, RoundOptions{})
	require.NoError(t, err)
	until, err := ExactUntil(a, b, RoundOptions{})
	require.NoError(t, err)
	assert.Equal(t, until.Fields(), since.Fields())
	assert.Equal(t, 1, since.Sign())
}
