package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempuslib/tempus/internal/exact"
)

func TestFixedClock_HoldsInstant(t *testing.T) {
	clock := NewFixedClockUnix(1_583_661_600)
	want, err := exact.FromUnix(1_583_661_600, 0)
	require.NoError(t, err)

	assert.True(t, clock.Now().Equal(want))
	// Repeated reads do not advance.
	assert.True(t, clock.Now().Equal(want))
}

func TestFixedClock_Advance(t *testing.T) {
	clock := NewFixedClockUnix(0)

	clock.Advance(1_500_000_000)
	want, err := exact.FromUnix(1, 500_000_000)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(want))

	clock.Advance(-1_500_000_000)
	zero, err := exact.FromUnix(0, 0)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(zero))
}

func TestFixedClock_Set(t *testing.T) {
	clock := NewFixedClockUnix(0)
	at, err := exact.FromUnix(1_604_221_200, 0)
	require.NoError(t, err)

	clock.Set(at)
	assert.True(t, clock.Now().Equal(at))
}

func TestFixedClock_ThreadSafe(t *testing.T) {
	clock := NewFixedClockUnix(0)
	const numGoroutines = 50
	const stepsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < stepsPerGoroutine; j++ {
				clock.Advance(1)
				clock.Now()
			}
		}()
	}
	wg.Wait()

	want, err := exact.FromUnix(0, numGoroutines*stepsPerGoroutine)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(want))
}
