// Package retry holds caller-side strategies for ring.Busy.
//
// The ring never retries on its own. A caller that loses a slot claim picks
// one of these policies, or its own.
package retry

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/randomizedcoder/mpmc-ring/internal/ring"
)

// Backoff returns how long to wait before the given retry attempt
// (starting at 1). Zero means yield the processor instead of sleeping.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// Spin yields with runtime.Gosched between attempts.
type Spin struct{}

func (Spin) Delay(int) time.Duration { return 0 }

// Exponential doubles (by Multiplier) from Initial up to Max.
type Exponential struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	// Jitter spreads each delay over [d/2, d).
	Jitter bool
}

func (e Exponential) Delay(attempt int) time.Duration {
	initial := e.Initial
	if initial <= 0 {
		initial = time.Microsecond
	}
	mult := e.Multiplier
	if mult < 1 {
		mult = 2
	}
	d := float64(initial)
	for i := 1; i < attempt; i++ {
		d *= mult
		if e.Max > 0 && d >= float64(e.Max) {
			d = float64(e.Max)
			break
		}
	}
	delay := time.Duration(d)
	if e.Jitter && delay > 1 {
		half := delay / 2
		delay = half + time.Duration(rand.Int64N(int64(half)))
	}
	return delay
}

// Policy retries an operation while it reports ring.Busy.
type Policy struct {
	// MaxAttempts bounds the number of calls. Zero means unbounded.
	MaxAttempts int
	Backoff     Backoff
}

// Stats reports what Do spent.
type Stats struct {
	Attempts int
}

// Do calls op until it returns something other than Busy, the attempt limit
// is reached or ctx is done. Only Busy is retried: Full and Empty are
// returned to the caller as-is.
func (p Policy) Do(ctx context.Context, op func() ring.Status) (ring.Status, Stats, error) {
	backoff := p.Backoff
	if backoff == nil {
		backoff = Spin{}
	}

	var stats Stats
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		stats.Attempts++
		st := op()
		if st != ring.Busy {
			return st, stats, nil
		}
		if p.MaxAttempts > 0 && stats.Attempts >= p.MaxAttempts {
			return st, stats, nil
		}
		if err := ctx.Err(); err != nil {
			return st, stats, err
		}

		d := backoff.Delay(stats.Attempts)
		if d <= 0 {
			runtime.Gosched()
			continue
		}
		if timer == nil {
			timer = time.NewTimer(d)
		} else {
			timer.Reset(d)
		}
		select {
		case <-ctx.Done():
			return st, stats, ctx.Err()
		case <-timer.C:
		}
	}
}
