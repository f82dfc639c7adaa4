package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitAcceptsSingularAndPlural(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Unit
	}{
		{"year", UnitYear},
		{"years", UnitYear},
		{"month", UnitMonth},
		{"months", UnitMonth},
		{"week", UnitWeek},
		{"day", UnitDay},
		{"hour", UnitHour},
		{"minutes", UnitMinute},
		{"second", UnitSecond},
		{"milliseconds", UnitMillisecond},
		{"microsecond", UnitMicrosecond},
		{"nanoseconds", UnitNanosecond},
	} {
		got, err := ParseUnit("test", tc.in, false)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseUnitRejectsUnknown(t *testing.T) {
	_, err := ParseUnit("test", "fortnight", false)
	require.Error(t, err)
	assert.True(t, IsTypeError(err))
}

func TestParseUnitAutoGating(t *testing.T) {
	_, err := ParseUnit("test", "auto", false)
	require.Error(t, err)
	assert.True(t, IsTypeError(err))

	got, err := ParseUnit("test", "auto", true)
	require.NoError(t, err)
	assert.Equal(t, UnitAuto, got)
}

func TestUnitOrdering(t *testing.T) {
	assert.True(t, UnitYear.Larger(UnitMonth))
	assert.True(t, UnitNanosecond.Smaller(UnitMicrosecond))
	assert.False(t, UnitDay.Larger(UnitDay))
}

func TestUnitClassification(t *testing.T) {
	assert.True(t, UnitYear.IsCalendarUnit())
	assert.True(t, UnitWeek.IsCalendarUnit())
	assert.False(t, UnitDay.IsCalendarUnit())
	assert.True(t, UnitDay.IsDateUnit())
	assert.False(t, UnitDay.IsTimeUnit())
	assert.True(t, UnitHour.IsTimeUnit())
	assert.True(t, UnitNanosecond.IsTimeUnit())
}

func TestNanosPer(t *testing.T) {
	assert.Equal(t, int64(86_400_000_000_000), NanosPer(UnitDay))
	assert.Equal(t, int64(3_600_000_000_000), NanosPer(UnitHour))
	assert.Equal(t, int64(1), NanosPer(UnitNanosecond))
	assert.Panics(t, func() { NanosPer(UnitMonth) })
}

func TestValidateIncrement(t *testing.T) {
	// 7 does not evenly divide 60 minutes.
	err := ValidateIncrement("test", UnitMinute, 7)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))

	require.NoError(t, ValidateIncrement("test", UnitMinute, 15))
	require.NoError(t, ValidateIncrement("test", UnitHour, 6))

	// The natural maximum itself is not a valid increment.
	err = ValidateIncrement("test", UnitHour, 24)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))

	// Date units take any positive increment.
	require.NoError(t, ValidateIncrement("test", UnitDay, 100))
	err = ValidateIncrement("test", UnitDay, 0)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))
}
