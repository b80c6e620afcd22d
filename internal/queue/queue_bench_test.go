package queue_test

import (
	"testing"

	"github.com/randomizedcoder/mpmc-ring/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int64
var sinkBool bool

// Direct type benchmarks (true performance floor)

func BenchmarkQueue_Channel_PushPop_Direct(b *testing.B) {
	q := queue.NewChannel[int64](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int64
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(int64(i))
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Ring_PushPop_Direct(b *testing.B) {
	q := newRing(b, 1024)
	defer q.Close()
	b.ReportAllocs()
	b.ResetTimer()

	var val int64
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(int64(i))
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkQueue_Channel_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int64] = queue.NewChannel[int64](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int64
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(int64(i))
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Ring_PushPop_Interface(b *testing.B) {
	r := newRing(b, 1024)
	defer r.Close()
	var q queue.Queue[int64] = r
	b.ReportAllocs()
	b.ResetTimer()

	var val int64
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(int64(i))
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Parallel push+pop from GOMAXPROCS goroutines

func BenchmarkQueue_Channel_Parallel(b *testing.B) {
	q := queue.NewChannel[int64](1024)
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		var i int64
		for pb.Next() {
			q.Push(i)
			q.Pop()
			i++
		}
	})
}

func BenchmarkQueue_Ring_Parallel(b *testing.B) {
	q := newRing(b, 1024)
	defer q.Close()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		var i int64
		for pb.Next() {
			q.Push(i)
			q.Pop()
			i++
		}
	})
}
