// Package clock abstracts wall time behind a two-method interface so
// the timer-driven simulations (upload progress, submission delay) can
// be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now().UTC() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// Fake is a virtual clock for tests. After advances virtual time by d
// and fires immediately, recording the requested delay, so timer-driven
// code runs to completion without sleeping while timestamps still move
// forward.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

var _ Clock = (*Fake)(nil)

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.now = f.now.Add(d)
	fireAt := f.now
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- fireAt
	return ch
}

// Waits returns the delays requested so far, in order.
func (f *Fake) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waits))
	copy(out, f.waits)
	return out
}
