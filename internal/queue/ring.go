package queue

import (
	"runtime"

	"github.com/randomizedcoder/mpmc-ring/internal/ring"
)

// Ring adapts ring.Typed to Queue. Busy is retried with runtime.Gosched
// until the claim resolves, so Push and Pop only report structural
// outcomes.
type Ring[T any] struct {
	t *ring.Typed[T]
}

// NewRing creates a Ring of size slots. T must have a fixed binary size.
func NewRing[T any](size int, policy ring.OverwritePolicy, opts ...ring.Option) (*Ring[T], error) {
	t, err := ring.NewTyped[T](size, policy, opts...)
	if err != nil {
		return nil, err
	}
	return &Ring[T]{t: t}, nil
}

// Push adds v. Under ring.OverwriteOldest it only fails on a closed ring.
func (r *Ring[T]) Push(v T) bool {
	for {
		switch r.t.Enqueue(v) {
		case ring.Success:
			return true
		case ring.Busy:
			runtime.Gosched()
		default:
			return false
		}
	}
}

func (r *Ring[T]) Pop() (T, bool) {
	for {
		v, st := r.t.Dequeue()
		switch st {
		case ring.Success:
			return v, true
		case ring.Busy:
			runtime.Gosched()
		default:
			return v, false
		}
	}
}

func (r *Ring[T]) Len() int { return r.t.Len() }
func (r *Ring[T]) Cap() int { return r.t.Cap() }

// Typed exposes the underlying ring for status-level access.
func (r *Ring[T]) Typed() *ring.Typed[T] { return r.t }

func (r *Ring[T]) Close() { r.t.Close() }
