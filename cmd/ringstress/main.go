// Command ringstress runs producers and consumers against one ring and
// checks that every payload was delivered or evicted exactly once.
//
// Usage:
//
//	go run ./cmd/ringstress --capacity 64 --policy overwrite --producers 8 --consumers 2
//	RINGSTRESS_DURATION=10s go run ./cmd/ringstress --per-producer 0 --metrics-addr :9090
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/randomizedcoder/mpmc-ring/internal/config"
	"github.com/randomizedcoder/mpmc-ring/internal/logging"
	"github.com/randomizedcoder/mpmc-ring/internal/ring"
	"github.com/randomizedcoder/mpmc-ring/internal/stress"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load("ringstress", args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logger.Sync() //nolint:errcheck

	sc, err := cfg.Stress()
	if err != nil {
		logger.Error("invalid config", zap.Error(err))
		return 2
	}
	if cfg.LogEvicts {
		sc.Observer = ring.LogObserver(logger.Named("evictions"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []ring.Option
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, ring.WithMetrics(reg, "ringstress"))

		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
	}

	fmt.Printf("Stress testing ring (capacity=%d, policy=%v, %dP/%dC)\n",
		sc.Capacity, sc.Policy, sc.Producers, sc.Consumers)
	fmt.Printf("Architecture: %s/%s, GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
	fmt.Println("─────────────────────────────────────────────────")

	rep, err := stress.Run(ctx, sc, logger, opts...)
	if err != nil {
		logger.Error("stress run failed", zap.Error(err))
		return 1
	}

	fmt.Printf("\nResults:\n")
	fmt.Printf("  Enqueued:       %12d\n", rep.Enqueued)
	fmt.Printf("  Dequeued:       %12d\n", rep.Dequeued)
	fmt.Printf("  Evicted:        %12d\n", rep.Evicted)
	fmt.Printf("  Full retries:   %12d\n", rep.FullRetries)
	fmt.Printf("  Busy enqueue:   %12d\n", rep.BusyEnqueue)
	fmt.Printf("  Busy dequeue:   %12d\n", rep.BusyDequeue)
	fmt.Printf("  Elapsed:        %12v\n", rep.Elapsed.Round(time.Microsecond))
	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  Dequeue:        %12.2f M ops/sec\n", rep.OpsPerSecond()/1e6)

	if err := rep.Verify(); err != nil {
		fmt.Printf("\nFAIL: %v\n", err)
		return 1
	}
	fmt.Printf("\nOK: every payload delivered or evicted exactly once\n")
	return 0
}
