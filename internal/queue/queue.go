// Package queue puts the MPMC ring and a buffered channel behind one
// non-blocking interface so drivers and benchmarks can swap them:
//   - Channel: buffered channel with select/default
//   - Ring: ring.Typed, spinning through Busy
//
// Both are safe for any number of producers and consumers.
package queue

// Queue is a non-blocking FIFO queue.
//
// Push returns false if the queue is full, Pop returns false if it is empty.
// Neither ever waits for the other side.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}
