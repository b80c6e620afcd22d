package cancel

import (
	"context"
	"sync/atomic"
	"time"
)

// AtomicCanceler is a stop flag backed by an atomic.Bool.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation. Subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Bridge returns an AtomicCanceler that is cancelled when ctx ends.
// Call release once the loops have stopped to detach it from ctx.
func Bridge(ctx context.Context) (c *AtomicCanceler, release func()) {
	c = NewAtomic()
	stop := context.AfterFunc(ctx, c.Cancel)
	return c, func() { stop() }
}

// After cancels c once d has elapsed. The returned function stops the
// timer and reports whether it did so before it fired.
func After(c Canceler, d time.Duration) (stop func() bool) {
	t := time.AfterFunc(d, c.Cancel)
	return t.Stop
}
