package ring_test

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/mpmc-ring/internal/ring"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkStatus ring.Status
var sinkUint64 uint64

func BenchmarkQueue_EnqueueDequeue(b *testing.B) {
	q, _ := ring.New(1024, 8, ring.FailWhenFull)
	defer q.Close()
	in := make([]byte, 8)
	out := make([]byte, 8)
	b.ReportAllocs()
	b.ResetTimer()

	var st ring.Status
	for i := 0; i < b.N; i++ {
		q.Enqueue(in)
		st = q.Dequeue(out)
	}
	sinkStatus = st
}

func BenchmarkQueue_Overwrite(b *testing.B) {
	q, _ := ring.New(64, 8, ring.OverwriteOldest)
	defer q.Close()
	in := make([]byte, 8)
	b.ReportAllocs()
	b.ResetTimer()

	var st ring.Status
	for i := 0; i < b.N; i++ {
		st = q.Enqueue(in)
	}
	sinkStatus = st
}

func BenchmarkTyped_EnqueueDequeue(b *testing.B) {
	q, _ := ring.NewTyped[uint64](1024, ring.FailWhenFull)
	defer q.Close()
	b.ReportAllocs()
	b.ResetTimer()

	var v uint64
	for i := 0; i < b.N; i++ {
		q.Enqueue(uint64(i))
		v, _ = q.Dequeue()
	}
	sinkUint64 = v
}

// BenchmarkQueue_MPMC_4P - 4 parallel producers, one spinning consumer
func BenchmarkQueue_MPMC_4P(b *testing.B) {
	q, _ := ring.New(1024, 8, ring.FailWhenFull)
	defer q.Close()
	var done atomic.Bool
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		out := make([]byte, 8)
		for !done.Load() {
			if q.Dequeue(out) != ring.Success {
				runtime.Gosched()
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		in := make([]byte, 8)
		for pb.Next() {
			for q.Enqueue(in) != ring.Success {
			}
		}
	})

	b.StopTimer()
	done.Store(true)
	<-consumerDone
}
