// Package cancel provides stop signals for the producer and consumer hot
// loops that drive a ring queue.
//
// A loop that retries Busy or Full millions of times per second should not
// pay for a channel select on every iteration:
//   - AtomicCanceler: one atomic load per Done()
//   - ContextCanceler: select on ctx.Done(), for code that already has a context
//   - Bridge: an AtomicCanceler that trips when a context ends
package cancel

// Canceler tells workers when to stop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}
