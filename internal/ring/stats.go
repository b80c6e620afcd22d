package ring

import "sync/atomic"

// Statistics counts queue outcomes. It is always collected.
//
// Enqueued is incremented before the slot becomes Ready, Dequeued and
// Evicted after the slot is claimed, so Dequeued+Evicted never exceeds
// Enqueued when read in that order.
type Statistics struct {
	enqueued atomic.Int64
	dequeued atomic.Int64
	evicted  atomic.Int64
	full     atomic.Int64
	empty    atomic.Int64
	busy     atomic.Int64
	invalid  atomic.Int64
}

func (s *Statistics) Enqueued() int64 { return s.enqueued.Load() }
func (s *Statistics) Dequeued() int64 { return s.dequeued.Load() }
func (s *Statistics) Evicted() int64  { return s.evicted.Load() }
func (s *Statistics) Full() int64     { return s.full.Load() }
func (s *Statistics) Empty() int64    { return s.empty.Load() }
func (s *Statistics) Busy() int64     { return s.busy.Load() }
func (s *Statistics) Invalid() int64  { return s.invalid.Load() }

// StatsSnapshot is a point-in-time copy of Statistics.
type StatsSnapshot struct {
	Enqueued int64 `json:"enqueued"`
	Dequeued int64 `json:"dequeued"`
	Evicted  int64 `json:"evicted"`
	Full     int64 `json:"full"`
	Empty    int64 `json:"empty"`
	Busy     int64 `json:"busy"`
	Invalid  int64 `json:"invalid"`
}

// Snapshot reads the consumer-side counters before Enqueued.
func (s *Statistics) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Dequeued: s.Dequeued(),
		Evicted:  s.Evicted(),
		Full:     s.Full(),
		Empty:    s.Empty(),
		Busy:     s.Busy(),
		Invalid:  s.Invalid(),
	}
	snap.Enqueued = s.Enqueued()
	return snap
}

// outcome records a non-success status.
func (s *Statistics) outcome(st Status) {
	switch st {
	case Full:
		s.full.Add(1)
	case Empty:
		s.empty.Add(1)
	case Busy:
		s.busy.Add(1)
	case InvalidArgument:
		s.invalid.Add(1)
	}
}
