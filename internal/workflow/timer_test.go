package workflow

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationTimer_RemainingNonIncreasing(t *testing.T) {
	timer := newReservationTimer(time.Second, func(uint64) {})
	timer.Start()
	defer timer.Stop()

	first := timer.Remaining()
	time.Sleep(20 * time.Millisecond)
	second := timer.Remaining()

	assert.LessOrEqual(t, second, first)
	assert.Greater(t, first, time.Duration(0))
}

func TestReservationTimer_ResetRestoresFullTimeout(t *testing.T) {
	timer := newReservationTimer(time.Second, func(uint64) {})
	timer.Start()
	defer timer.Stop()

	time.Sleep(50 * time.Millisecond)
	require.Less(t, timer.Remaining(), time.Second)

	timer.Reset()
	assert.Greater(t, timer.Remaining(), 900*time.Millisecond)
}

func TestReservationTimer_FiresWithCurrentGeneration(t *testing.T) {
	var fired atomic.Uint64
	var timer *reservationTimer
	done := make(chan struct{})
	timer = newReservationTimer(20*time.Millisecond, func(gen uint64) {
		if timer.Current(gen) {
			fired.Add(1)
		}
		close(done)
	})
	timer.Start()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, uint64(1), fired.Load())
}

func TestReservationTimer_StaleFireIgnoredAfterReset(t *testing.T) {
	fires := make(chan uint64, 4)
	timer := newReservationTimer(30*time.Millisecond, func(gen uint64) {
		fires <- gen
	})
	timer.Start()
	firstGen := func() uint64 {
		timer.mu.Lock()
		defer timer.mu.Unlock()
		return timer.gen
	}()

	// Reset before the first deadline: the old generation must never be
	// considered current again.
	time.Sleep(10 * time.Millisecond)
	timer.Reset()

	select {
	case gen := <-fires:
		assert.NotEqual(t, firstGen, gen)
		assert.True(t, timer.Current(gen) || gen > firstGen)
	case <-time.After(time.Second):
		t.Fatal("reset timer did not fire")
	}
	assert.False(t, timer.Current(firstGen))
}

func TestReservationTimer_StopPreventsCurrentFire(t *testing.T) {
	fires := make(chan uint64, 1)
	timer := newReservationTimer(20*time.Millisecond, func(gen uint64) {
		fires <- gen
	})
	timer.Start()
	timer.Stop()

	assert.Equal(t, time.Duration(0), timer.Remaining())

	select {
	case gen := <-fires:
		// A fire that slipped past Stop must be recognizably stale.
		assert.False(t, timer.Current(gen))
	case <-time.After(100 * time.Millisecond):
	}
}
