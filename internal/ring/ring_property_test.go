package ring_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"pgregory.net/rapid"

	"github.com/randomizedcoder/mpmc-ring/internal/ring"
)

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 64).Draw(t, "size")
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		payload := rapid.SliceOfN(rapid.Byte(), size, size).Draw(t, "payload")

		q, err := ring.New(capacity, size, ring.FailWhenFull)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer q.Close()

		if st := q.Enqueue(payload); st != ring.Success {
			t.Fatalf("Enqueue = %v", st)
		}
		out := make([]byte, size)
		if st := q.Dequeue(out); st != ring.Success {
			t.Fatalf("Dequeue = %v", st)
		}
		if !bytes.Equal(out, payload) {
			t.Fatalf("round trip: got %x, want %x", out, payload)
		}
	})
}

func TestProperty_OverwriteKeepsNewest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 32).Draw(t, "capacity")
		extra := rapid.IntRange(1, 64).Draw(t, "extra")

		var evicted []uint64
		q, err := ring.New(capacity, 8, ring.OverwriteOldest,
			ring.WithObserver(ring.ObserverFunc(func(e ring.Eviction) {
				evicted = append(evicted, binary.LittleEndian.Uint64(e.Payload))
			})))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer q.Close()

		total := capacity + extra
		buf := make([]byte, 8)
		for i := 0; i < total; i++ {
			binary.LittleEndian.PutUint64(buf, uint64(i))
			if st := q.Enqueue(buf); st != ring.Success {
				t.Fatalf("Enqueue(%d) = %v", i, st)
			}
		}

		if len(evicted) != extra {
			t.Fatalf("evictions = %d, want %d", len(evicted), extra)
		}
		for i, v := range evicted {
			if v != uint64(i) {
				t.Fatalf("eviction %d dropped %d", i, v)
			}
		}
		for want := extra; want < total; want++ {
			if st := q.Dequeue(buf); st != ring.Success {
				t.Fatalf("Dequeue = %v", st)
			}
			if got := binary.LittleEndian.Uint64(buf); got != uint64(want) {
				t.Fatalf("FIFO violation: got %d, want %d", got, want)
			}
		}
		if st := q.Dequeue(buf); st != ring.Empty {
			t.Fatalf("Dequeue after drain = %v", st)
		}
	})
}

// TestProperty_MatchesModel drives a queue with a random single-goroutine
// operation sequence and checks it against a slice.
func TestProperty_MatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
		policy := ring.OverwritePolicy(rapid.IntRange(0, 1).Draw(t, "policy"))

		q, err := ring.New(capacity, 8, policy)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer q.Close()

		var model []uint64
		var enqueued, consumed int
		next := uint64(0)
		buf := make([]byte, 8)

		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0, 1:
				binary.LittleEndian.PutUint64(buf, next)
				st := q.Enqueue(buf)
				switch {
				case len(model) < capacity:
					if st != ring.Success {
						t.Fatalf("Enqueue on non-full = %v", st)
					}
				case policy == ring.FailWhenFull:
					if st != ring.Full {
						t.Fatalf("Enqueue on full = %v, want Full", st)
					}
					continue
				default:
					if st != ring.Success {
						t.Fatalf("Enqueue with overwrite = %v", st)
					}
					model = model[1:]
					consumed++
				}
				model = append(model, next)
				enqueued++
				next++
			case 2:
				st := q.Dequeue(buf)
				if len(model) == 0 {
					if st != ring.Empty {
						t.Fatalf("Dequeue on empty = %v", st)
					}
					continue
				}
				if st != ring.Success {
					t.Fatalf("Dequeue = %v", st)
				}
				if got := binary.LittleEndian.Uint64(buf); got != model[0] {
					t.Fatalf("FIFO violation: got %d, want %d", got, model[0])
				}
				model = model[1:]
				consumed++
			}

			if q.Len() != len(model) {
				t.Fatalf("Len = %d, model %d", q.Len(), len(model))
			}
			if q.Head() != enqueued%capacity {
				t.Fatalf("Head = %d, want %d", q.Head(), enqueued%capacity)
			}
			if q.Tail() != consumed%capacity {
				t.Fatalf("Tail = %d, want %d", q.Tail(), consumed%capacity)
			}
		}
	})
}
