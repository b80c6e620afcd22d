// Package stress drives one ring queue with many producers and consumers
// and checks that every payload comes out exactly once.
//
// Payloads are random UUIDs, so the queue's element size is PayloadSize.
// Payloads dropped by OverwriteOldest are collected through the eviction
// observer and count as delivered.
package stress

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/mpmc-ring/internal/cancel"
	"github.com/randomizedcoder/mpmc-ring/internal/retry"
	"github.com/randomizedcoder/mpmc-ring/internal/ring"
	"github.com/randomizedcoder/mpmc-ring/internal/tick"
)

// PayloadSize is the element size of the queue under test.
const PayloadSize = len(uuid.UUID{})

var (
	ErrConfig       = errors.New("stress: invalid config")
	ErrVerification = errors.New("stress: delivery check failed")
)

// Config describes one run.
type Config struct {
	Capacity  int
	Policy    ring.OverwritePolicy
	Producers int
	Consumers int

	// PerProducer bounds the payloads each producer enqueues. Zero means
	// produce until Duration elapses or the context ends.
	PerProducer int
	Duration    time.Duration

	// Retry is applied to Busy results on Enqueue.
	Retry retry.Policy

	// ReportEvery is the progress log interval.
	ReportEvery time.Duration

	// Observer also receives every eviction.
	Observer ring.Observer
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrConfig)
	case c.Producers <= 0 || c.Consumers <= 0:
		return fmt.Errorf("%w: need at least one producer and one consumer", ErrConfig)
	case c.PerProducer < 0:
		return fmt.Errorf("%w: negative per-producer count", ErrConfig)
	case c.PerProducer == 0 && c.Duration <= 0:
		return fmt.Errorf("%w: set a per-producer count or a duration", ErrConfig)
	}
	return nil
}

// Report is the outcome of a run.
type Report struct {
	Enqueued int64 `json:"enqueued"`
	Dequeued int64 `json:"dequeued"`
	Evicted  int64 `json:"evicted"`

	FullRetries  int64 `json:"full_retries"`
	BusyEnqueue  int64 `json:"busy_enqueue"`
	BusyDequeue  int64 `json:"busy_dequeue"`
	EmptyDequeue int64 `json:"empty_dequeue"`

	Duplicates int `json:"duplicates"`
	Missing    int `json:"missing"`
	Unknown    int `json:"unknown"`

	Elapsed time.Duration     `json:"elapsed"`
	Stats   ring.StatsSnapshot `json:"stats"`
}

// Verify returns ErrVerification if any payload was lost, duplicated or
// invented.
func (r Report) Verify() error {
	if r.Duplicates > 0 || r.Missing > 0 || r.Unknown > 0 {
		return fmt.Errorf("%w: %d duplicated, %d missing, %d unknown",
			ErrVerification, r.Duplicates, r.Missing, r.Unknown)
	}
	if r.Enqueued != r.Dequeued+r.Evicted {
		return fmt.Errorf("%w: enqueued %d != dequeued %d + evicted %d",
			ErrVerification, r.Enqueued, r.Dequeued, r.Evicted)
	}
	return nil
}

// OpsPerSecond is the dequeue rate over the run.
func (r Report) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Dequeued) / r.Elapsed.Seconds()
}

type producerResult struct {
	sent []uuid.UUID
	full int64
	busy int64
}

type consumerResult struct {
	got   []uuid.UUID
	busy  int64
	empty int64
}

type evictionLog struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (l *evictionLog) OnEvict(e ring.Eviction) {
	id, err := uuid.FromBytes(e.Payload)
	if err != nil {
		return
	}
	l.mu.Lock()
	l.ids = append(l.ids, id)
	l.mu.Unlock()
}

// Run creates a queue from cfg and opts, drives it and returns the report.
// It returns an error for a bad config, a queue construction failure or an
// unexpected status; a delivery mismatch is reported by Report.Verify.
func Run(ctx context.Context, cfg Config, logger *zap.Logger, opts ...ring.Option) (Report, error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	evictions := &evictionLog{}
	opts = append(opts, ring.WithObserver(ring.MultiObserver(evictions, cfg.Observer)))
	q, err := ring.New(cfg.Capacity, PayloadSize, cfg.Policy, opts...)
	if err != nil {
		return Report{}, err
	}
	defer q.Close()

	stop, release := cancel.Bridge(ctx)
	defer release()
	if cfg.Duration > 0 {
		defer cancel.After(stop, cfg.Duration)()
	}

	logger.Info("stress run starting",
		zap.Int("capacity", cfg.Capacity),
		zap.Stringer("policy", cfg.Policy),
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("per_producer", cfg.PerProducer),
		zap.Duration("duration", cfg.Duration),
	)

	start := time.Now()
	produced := make([]producerResult, cfg.Producers)
	consumed := make([]consumerResult, cfg.Consumers)

	var producers errgroup.Group
	for i := range produced {
		producers.Go(func() error {
			return produce(ctx, q, cfg, stop, &produced[i])
		})
	}

	var consumers errgroup.Group
	drained := make(chan struct{})
	ticker := tick.NewAtomicTicker(cfg.ReportEvery)
	for i := range consumed {
		consumers.Go(func() error {
			return consume(q, drained, ticker, logger, &consumed[i])
		})
	}

	perr := producers.Wait()
	close(drained)
	cerr := consumers.Wait()
	if err := errors.Join(perr, cerr); err != nil {
		return Report{}, err
	}

	rep := Report{
		Elapsed: time.Since(start),
		Stats:   q.Stats().Snapshot(),
	}
	evictions.mu.Lock()
	evicted := evictions.ids
	evictions.mu.Unlock()
	tally(&rep, produced, consumed, evicted)

	logger.Info("stress run finished",
		zap.Int64("enqueued", rep.Enqueued),
		zap.Int64("dequeued", rep.Dequeued),
		zap.Int64("evicted", rep.Evicted),
		zap.Int64("busy_enqueue", rep.BusyEnqueue),
		zap.Int64("busy_dequeue", rep.BusyDequeue),
		zap.Int("duplicates", rep.Duplicates),
		zap.Int("missing", rep.Missing),
		zap.Duration("elapsed", rep.Elapsed),
	)
	return rep, nil
}

func produce(ctx context.Context, q *ring.Queue, cfg Config, stop cancel.Canceler, res *producerResult) error {
	for cfg.PerProducer == 0 || len(res.sent) < cfg.PerProducer {
		if stop.Done() {
			return nil
		}
		id := uuid.New()
		st, rs, err := cfg.Retry.Do(ctx, func() ring.Status { return q.Enqueue(id[:]) })
		res.busy += int64(rs.Attempts - 1)
		if err != nil {
			return nil
		}
		switch st {
		case ring.Success:
			res.sent = append(res.sent, id)
		case ring.Full:
			res.full++
			runtime.Gosched()
		case ring.Busy:
			res.busy++
		default:
			return fmt.Errorf("enqueue: unexpected %v", st)
		}
	}
	return nil
}

// consume drains q until drained is closed and nothing is left.
func consume(q *ring.Queue, drained <-chan struct{}, ticker tick.Ticker, logger *zap.Logger, res *consumerResult) error {
	buf := make([]byte, PayloadSize)
	for {
		switch st := q.Dequeue(buf); st {
		case ring.Success:
			res.got = append(res.got, uuid.UUID(buf))
		case ring.Busy:
			res.busy++
			runtime.Gosched()
		case ring.Empty:
			res.empty++
			select {
			case <-drained:
				if q.Len() == 0 {
					return nil
				}
			default:
			}
			runtime.Gosched()
		default:
			return fmt.Errorf("dequeue: unexpected %v", st)
		}

		if ticker.Tick() {
			s := q.Stats()
			logger.Info("progress",
				zap.Int64("dequeued", s.Dequeued()),
				zap.Int64("evicted", s.Evicted()),
				zap.Int64("enqueued", s.Enqueued()),
				zap.Int("len", q.Len()),
			)
		}
	}
}

func tally(rep *Report, produced []producerResult, consumed []consumerResult, evicted []uuid.UUID) {
	sent := make(map[uuid.UUID]int)
	for _, p := range produced {
		rep.Enqueued += int64(len(p.sent))
		rep.FullRetries += p.full
		rep.BusyEnqueue += p.busy
		for _, id := range p.sent {
			sent[id] = 0
		}
	}

	seen := func(id uuid.UUID) {
		n, ok := sent[id]
		if !ok {
			rep.Unknown++
			return
		}
		if n > 0 {
			rep.Duplicates++
		}
		sent[id] = n + 1
	}
	for _, c := range consumed {
		rep.Dequeued += int64(len(c.got))
		rep.BusyDequeue += c.busy
		rep.EmptyDequeue += c.empty
		for _, id := range c.got {
			seen(id)
		}
	}
	rep.Evicted = int64(len(evicted))
	for _, id := range evicted {
		seen(id)
	}

	for _, n := range sent {
		if n == 0 {
			rep.Missing++
		}
	}
}
