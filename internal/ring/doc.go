// Package ring provides a fixed-capacity MPMC (Multi-Producer Multi-Consumer)
// circular buffer of fixed-size byte payloads.
//
// The queue never blocks and never locks. Every slot carries its own state:
//
//	Empty --(producer claims)--> Writing --(producer commits)--> Ready
//	Ready --(consumer claims)--> Reading --(consumer commits)--> Empty
//
// Each transition is a single-winner compare-and-swap. A goroutine that loses
// a claim receives Busy and decides for itself whether to retry; the queue
// has no retry or timeout logic of its own (see package retry).
//
// # Full and empty
//
// The head and tail cursors alone cannot tell a full ring from an empty one,
// so the queue keeps an explicit occupied count. Enqueue reports Full when the
// count reaches the capacity under FailWhenFull. Under OverwriteOldest the
// oldest element is evicted first, the registered Observer is notified, and
// the enqueue proceeds.
//
// # Ordering
//
// Producers claim slots in increasing head order and consumers in increasing
// tail order, so the n-th successful Dequeue returns the payload of the n-th
// successful Enqueue, unless that payload was evicted.
//
// # Lifetime
//
// Close releases the storage. Close must not race with other calls and must
// be called at most once.
package ring
