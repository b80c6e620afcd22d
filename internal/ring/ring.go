package ring

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Queue is a lock-free MPMC ring of fixed-size byte payloads.
//
// Any number of goroutines may call Enqueue, Dequeue and SetOverwritePolicy
// concurrently. Close may not.
type Queue struct {
	capacity    uint64
	elementSize int
	storage     []byte
	slots       []slot

	observer Observer
	stats    *Statistics
	metrics  *queueMetrics // nil unless WithMetrics

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // next producer ticket

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // next consumer ticket

	_pad2 [56]byte //nolint:unused

	size   atomic.Int64 // claimed by producers, not yet claimed by consumers
	policy atomic.Uint32
	closed atomic.Bool
}

// New allocates a queue of capacity slots of elementSize bytes each.
//
// A non-positive capacity or element size returns ErrInvalidArgument. A
// storage size the runtime cannot satisfy returns ErrAllocation. An unknown
// policy is clamped to FailWhenFull.
func New(capacity, elementSize int, policy OverwritePolicy, opts ...Option) (*Queue, error) {
	if capacity <= 0 || elementSize <= 0 {
		return nil, fmt.Errorf("%w: capacity %d and element size %d must be positive",
			ErrInvalidArgument, capacity, elementSize)
	}
	if !policy.Valid() {
		policy = FailWhenFull
	}

	storage, slots, err := allocate(capacity, elementSize)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts...)
	q := &Queue{
		capacity:    uint64(capacity),
		elementSize: elementSize,
		storage:     storage,
		slots:       slots,
		observer:    o.observer,
		stats:       &Statistics{},
	}
	q.policy.Store(uint32(policy))

	if o.registerer != nil {
		m, err := newQueueMetrics(o.registerer, o.name, capacity)
		if err != nil {
			return nil, err
		}
		q.metrics = m
	}
	return q, nil
}

// allocate turns runtime allocation panics into ErrAllocation. A real
// out-of-memory condition is still fatal.
func allocate(capacity, elementSize int) (storage []byte, slots []slot, err error) {
	if capacity > math.MaxInt/elementSize {
		return nil, nil, fmt.Errorf("%w: %d x %d bytes overflows", ErrAllocation, capacity, elementSize)
	}
	defer func() {
		if r := recover(); r != nil {
			storage, slots = nil, nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	storage = make([]byte, capacity*elementSize)
	slots = make([]slot, capacity)
	return storage, slots, nil
}

// Enqueue copies element into the next free slot.
//
// element must be exactly ElementSize bytes. On a full queue Enqueue returns
// Full under FailWhenFull. Under OverwriteOldest it evicts the oldest
// element, notifies the observer and still returns Success. Busy means
// another goroutine holds the slot; nothing was written.
func (q *Queue) Enqueue(element []byte) Status {
	if q == nil || element == nil {
		return InvalidArgument
	}
	if q.closed.Load() {
		return Unavailable
	}
	if len(element) != q.elementSize {
		return q.done(opEnqueue, InvalidArgument)
	}

	if q.size.Load() >= int64(q.capacity) {
		if q.Policy() != OverwriteOldest {
			return q.done(opEnqueue, Full)
		}
		// The oldest slot is back to Empty before the head claim starts.
		if st := q.evict(); st == Busy {
			return q.done(opEnqueue, Busy)
		}
	}

	pos := q.head.Load()
	idx := pos % q.capacity
	s := &q.slots[idx]
	if !s.claimWrite() {
		return q.done(opEnqueue, Busy)
	}
	// A stale pos can still find its slot Empty; the cursor decides.
	if !q.head.CompareAndSwap(pos, pos+1) {
		s.abortWrite()
		return q.done(opEnqueue, Busy)
	}

	copy(q.cell(idx), element)
	q.stats.enqueued.Add(1)
	q.size.Add(1)
	s.commitWrite()
	return q.done(opEnqueue, Success)
}

// Dequeue copies the oldest element into out, which must hold at least
// ElementSize bytes.
func (q *Queue) Dequeue(out []byte) Status {
	if q == nil || out == nil {
		return InvalidArgument
	}
	if q.closed.Load() {
		return Unavailable
	}
	if len(out) < q.elementSize {
		return q.done(opDequeue, InvalidArgument)
	}
	_, st := q.take(out, &q.stats.dequeued)
	return q.done(opDequeue, st)
}

// evict drops the oldest element. Empty means a consumer got there first.
func (q *Queue) evict() Status {
	var payload []byte
	if q.observer != nil {
		payload = make([]byte, q.elementSize)
	}
	idx, st := q.take(payload, &q.stats.evicted)
	if st != Success {
		return st
	}
	if q.metrics != nil {
		q.metrics.evictions.Inc()
	}
	if q.observer != nil {
		q.observer.OnEvict(Eviction{Payload: payload, Position: int(idx)})
	}
	return Success
}

// take claims the slot at tail, copies it into out when out is non-nil and
// releases it. counter is bumped once the claim is final.
func (q *Queue) take(out []byte, counter *atomic.Int64) (uint64, Status) {
	if q.size.Load() <= 0 {
		return 0, Empty
	}

	pos := q.tail.Load()
	idx := pos % q.capacity
	s := &q.slots[idx]
	if !s.claimRead() {
		return idx, Busy
	}
	if !q.tail.CompareAndSwap(pos, pos+1) {
		s.abortRead()
		return idx, Busy
	}

	q.size.Add(-1)
	counter.Add(1)
	if out != nil {
		copy(out, q.cell(idx))
	}
	s.commitRead()
	return idx, Success
}

func (q *Queue) cell(idx uint64) []byte {
	off := int(idx) * q.elementSize
	return q.storage[off : off+q.elementSize : off+q.elementSize]
}

func (q *Queue) done(op int, st Status) Status {
	q.stats.outcome(st)
	if q.metrics != nil {
		q.metrics.record(op, st)
		if st == Success {
			q.metrics.size.Set(float64(q.Len()))
		}
	}
	return st
}

// SetOverwritePolicy switches the full-queue behaviour. Unknown policies
// are rejected. Slots already claimed are unaffected.
func (q *Queue) SetOverwritePolicy(p OverwritePolicy) Status {
	if q == nil || !p.Valid() {
		return InvalidArgument
	}
	if q.closed.Load() {
		return Unavailable
	}
	q.policy.Store(uint32(p))
	return Success
}

// Policy returns the current overwrite policy.
func (q *Queue) Policy() OverwritePolicy {
	return OverwritePolicy(q.policy.Load())
}

// Len returns the number of occupied slots. It may be stale by the time it
// returns.
func (q *Queue) Len() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Cap returns the number of slots, or 0 after Close.
func (q *Queue) Cap() int { return int(q.capacity) }

// ElementSize returns the payload size in bytes, or 0 after Close.
func (q *Queue) ElementSize() int { return q.elementSize }

// Head returns the slot index the next Enqueue will claim.
func (q *Queue) Head() int {
	if q.capacity == 0 {
		return 0
	}
	return int(q.head.Load() % q.capacity)
}

// Tail returns the slot index the next Dequeue will claim.
func (q *Queue) Tail() int {
	if q.capacity == 0 {
		return 0
	}
	return int(q.tail.Load() % q.capacity)
}

// Stats returns the live counters.
func (q *Queue) Stats() *Statistics { return q.stats }

// Close releases the storage and metrics. The queue answers Unavailable
// afterwards. Close must not run concurrently with other calls on q.
func (q *Queue) Close() Status {
	if q == nil {
		return InvalidArgument
	}
	if !q.closed.CompareAndSwap(false, true) {
		return Unavailable
	}
	if q.metrics != nil {
		q.metrics.unregister()
		q.metrics = nil
	}
	q.storage = nil
	q.slots = nil
	q.observer = nil
	q.capacity = 0
	q.elementSize = 0
	q.head.Store(0)
	q.tail.Store(0)
	q.size.Store(0)
	return Success
}
