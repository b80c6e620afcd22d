// Package tick provides a periodic trigger cheap enough to poll from a
// queue worker's hot loop, where a time.Ticker select on every iteration
// would dominate the cost of an Enqueue or Dequeue.
//
//	for !stop.Done() {
//	    if ticker.Tick() { reportProgress() }
//	    q.Dequeue(buf)
//	}
package tick

import "time"

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()
}

// DefaultInterval is the progress reporting interval used by the stress
// harness when none is configured.
const DefaultInterval = time.Second
