package tick

import (
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds without
// building a time.Time.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// AtomicTicker compares runtime.nanotime against the last tick and uses a
// compare-and-swap so only one of several polling goroutines sees each tick.
type AtomicTicker struct {
	interval int64 // nanoseconds
	lastTick atomic.Int64
}

// NewAtomicTicker creates an AtomicTicker. A non-positive interval falls
// back to DefaultInterval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &AtomicTicker{
		interval: int64(interval),
	}
	t.lastTick.Store(nanotime())
	return t
}

func (a *AtomicTicker) Tick() bool {
	now := nanotime()
	last := a.lastTick.Load()

	if now-last >= a.interval {
		return a.lastTick.CompareAndSwap(last, now)
	}
	return false
}

func (a *AtomicTicker) Reset() {
	a.lastTick.Store(nanotime())
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
