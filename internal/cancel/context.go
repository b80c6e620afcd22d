package cancel

import "context"

// ContextCanceler wraps context.Context for cancellation signaling.
// Done() performs a non-blocking select on ctx.Done().
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context, for retry.Policy.Do and friends.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
