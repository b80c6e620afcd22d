// Command ringbench compares the ring with a buffered channel.
//
// Usage:
//
//	go run ./cmd/ringbench -n 10000000 -size 1024
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/randomizedcoder/mpmc-ring/internal/cancel"
	"github.com/randomizedcoder/mpmc-ring/internal/queue"
	"github.com/randomizedcoder/mpmc-ring/internal/ring"
	"github.com/randomizedcoder/mpmc-ring/internal/tick"
)

type candidate struct {
	name string
	q    queue.Queue[int64]
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue size")
	flag.Parse()

	fmt.Printf("Benchmarking queues (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Printf("Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println("─────────────────────────────────────────────────")

	fail, err := queue.NewRing[int64](*size, ring.FailWhenFull)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer fail.Close()
	over, err := queue.NewRing[int64](*size, ring.OverwriteOldest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer over.Close()

	candidates := []candidate{
		{"Channel", queue.NewChannel[int64](*size)},
		{"Ring(FailWhenFull)", fail},
		{"Ring(Overwrite)", over},
	}

	// Push + pop
	results := make([]time.Duration, len(candidates))
	for i, c := range candidates {
		start := time.Now()
		for j := 0; j < *iterations; j++ {
			c.q.Push(int64(j))
			c.q.Pop()
		}
		results[i] = time.Since(start)
	}
	printResults("push + pop per iteration", candidates, results, *iterations)

	// Hot loop: cancel check, tick check, pop, recycle
	fmt.Println()
	fmt.Println("Consumer hot loop:")
	fmt.Println()
	fmt.Println("  for {")
	fmt.Println("      if stop.Done() { return }")
	fmt.Println("      if ticker.Tick() { reportProgress() }")
	fmt.Println("      v, ok := q.Pop()")
	fmt.Println("  }")

	for i, c := range candidates {
		for j := 0; j < *size; j++ {
			c.q.Push(int64(j))
		}
		stop, release := cancel.Bridge(context.Background())
		ticker := tick.NewAtomicTicker(time.Hour)

		start := time.Now()
		for j := 0; j < *iterations; j++ {
			if stop.Done() {
				break
			}
			_ = ticker.Tick()
			v, _ := c.q.Pop()
			c.q.Push(v)
		}
		results[i] = time.Since(start)
		release()
	}
	printResults("cancel + tick + pop + push per iteration", candidates, results, *iterations)
}

func printResults(title string, candidates []candidate, results []time.Duration, iterations int) {
	fmt.Printf("\nResults (%s):\n", title)
	baseline := float64(results[0].Nanoseconds()) / float64(iterations)

	for i, c := range candidates {
		perOp := float64(results[i].Nanoseconds()) / float64(iterations)
		speedup := baseline / perOp
		throughput := 1000 / perOp // M ops/sec

		fmt.Printf("  %-20s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			c.name, results[i], perOp, speedup, throughput)
	}
}
