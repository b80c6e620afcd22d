package tick_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/mpmc-ring/internal/tick"
)

func TestAtomicTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)

	// Should not tick immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}

	// Wait for interval + buffer
	time.Sleep(interval + 20*time.Millisecond)

	// Should tick now
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}

	// Should not tick again immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after tick")
	}
}

func TestAtomicTicker_Reset(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)

	time.Sleep(interval + 20*time.Millisecond)
	ticker.Reset()

	if ticker.Tick() {
		t.Error("expected Tick() = false after Reset()")
	}
}

func TestAtomicTicker_DefaultInterval(t *testing.T) {
	ticker := tick.NewAtomicTicker(0)
	if ticker.Interval() != tick.DefaultInterval {
		t.Errorf("expected Interval() = %v, got %v", tick.DefaultInterval, ticker.Interval())
	}
}

// TestAtomicTicker_SingleWinner checks that one elapsed interval fires for
// exactly one of several polling workers.
func TestAtomicTicker_SingleWinner(t *testing.T) {
	interval := 30 * time.Millisecond
	var ticker tick.Ticker = tick.NewAtomicTicker(interval)
	time.Sleep(interval + 10*time.Millisecond)

	var fired atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				if ticker.Tick() {
					fired.Add(1)
				}
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one tick across workers, got %d", got)
	}
}
