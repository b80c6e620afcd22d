package ring

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// Typed is a Queue of fixed-size values of T, encoded little endian with
// encoding/binary. T must have a fixed size: no ints, strings or slices.
type Typed[T any] struct {
	q    *Queue
	size int
	bufs sync.Pool
}

// NewTyped creates a queue holding capacity values of T.
func NewTyped[T any](capacity int, policy OverwritePolicy, opts ...Option) (*Typed[T], error) {
	var zero T
	size := binary.Size(zero)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %T has no fixed binary size", ErrInvalidArgument, zero)
	}
	q, err := New(capacity, size, policy, opts...)
	if err != nil {
		return nil, err
	}
	t := &Typed[T]{q: q, size: size}
	t.bufs.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return t, nil
}

// Enqueue encodes v and enqueues it.
func (t *Typed[T]) Enqueue(v T) Status {
	bp := t.bufs.Get().(*[]byte)
	defer t.bufs.Put(bp)
	if _, err := binary.Encode(*bp, binary.LittleEndian, v); err != nil {
		return InvalidArgument
	}
	return t.q.Enqueue(*bp)
}

// Dequeue removes the oldest value. The value is the zero T unless the
// status is Success.
func (t *Typed[T]) Dequeue() (T, Status) {
	var v T
	bp := t.bufs.Get().(*[]byte)
	defer t.bufs.Put(bp)
	st := t.q.Dequeue(*bp)
	if st != Success {
		return v, st
	}
	if _, err := binary.Decode(*bp, binary.LittleEndian, &v); err != nil {
		return v, Failure
	}
	return v, Success
}

// Decode turns a raw payload, such as Eviction.Payload, back into a T.
func (t *Typed[T]) Decode(b []byte) (T, error) {
	var v T
	if len(b) < t.size {
		return v, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidArgument, len(b), t.size)
	}
	_, err := binary.Decode(b, binary.LittleEndian, &v)
	return v, err
}

// SetOverwritePolicy forwards to the underlying queue.
func (t *Typed[T]) SetOverwritePolicy(p OverwritePolicy) Status {
	return t.q.SetOverwritePolicy(p)
}

func (t *Typed[T]) Len() int { return t.q.Len() }
func (t *Typed[T]) Cap() int { return t.q.Cap() }

// Queue returns the underlying byte queue.
func (t *Typed[T]) Queue() *Queue { return t.q }

// Close closes the underlying queue.
func (t *Typed[T]) Close() Status { return t.q.Close() }
