package workflow

import (
	"sync"
	"time"
)

// reservationTimer is a resettable per-order countdown. Every Start/Reset
// bumps a generation counter; the fire callback receives the generation it
// was scheduled for, so a fire racing with a Reset can be told apart from a
// current one and ignored.
type reservationTimer struct {
	mu       sync.Mutex
	timeout  time.Duration
	deadline time.Time
	gen      uint64
	timer    *time.Timer
	onFire   func(gen uint64)
}

func newReservationTimer(timeout time.Duration, onFire func(gen uint64)) *reservationTimer {
	return &reservationTimer{timeout: timeout, onFire: onFire}
}

// Start arms the timer for the full timeout and returns the new deadline.
func (t *reservationTimer) Start() time.Time {
	return t.Reset()
}

// Reset re-arms the timer for the full timeout from now, invalidating any
// previously scheduled fire.
func (t *reservationTimer) Reset() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.deadline = time.Now().Add(t.timeout)

	gen := t.gen
	t.timer = time.AfterFunc(t.timeout, func() { t.onFire(gen) })
	return t.deadline
}

// Stop disarms the timer. A fire already in flight carries a stale
// generation and will not match Current.
func (t *reservationTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// Current reports whether gen is the generation of the armed timer.
func (t *reservationTimer) Current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil && gen == t.gen
}

// Remaining returns the time left until the deadline, never negative.
func (t *reservationTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		return 0
	}
	d := time.Until(t.deadline)
	if d < 0 {
		return 0
	}
	return d
}
