// Package config loads ringstress settings from flags, RINGSTRESS_*
// environment variables and an optional YAML file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/mpmc-ring/internal/retry"
	"github.com/randomizedcoder/mpmc-ring/internal/ring"
	"github.com/randomizedcoder/mpmc-ring/internal/stress"
)

const EnvPrefix = "RINGSTRESS"

var ErrInvalid = errors.New("config: invalid value")

// Config is the ringstress configuration.
type Config struct {
	Capacity    int           `mapstructure:"capacity"`
	Policy      string        `mapstructure:"policy"`
	Producers   int           `mapstructure:"producers"`
	Consumers   int           `mapstructure:"consumers"`
	PerProducer int           `mapstructure:"per_producer"`
	Duration    time.Duration `mapstructure:"duration"`
	ReportEvery time.Duration `mapstructure:"report_every"`

	RetryAttempts int           `mapstructure:"retry_attempts"`
	BackoffMax    time.Duration `mapstructure:"backoff_max"`

	MetricsAddr string `mapstructure:"metrics_addr"`
	LogLevel    string `mapstructure:"log_level"`
	LogDev      bool   `mapstructure:"log_development"`
	LogEvicts   bool   `mapstructure:"log_evictions"`
}

// Load parses args (without the program name). It returns pflag.ErrHelp
// when -h or --help was given.
func Load(name string, args []string) (*Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "optional YAML config file")
	fs.Int("capacity", 1024, "ring capacity in slots")
	fs.String("policy", ring.FailWhenFull.String(), "overwrite policy: fail or overwrite")
	fs.Int("producers", 4, "producer goroutines")
	fs.Int("consumers", 4, "consumer goroutines")
	fs.Int("per-producer", 100_000, "payloads per producer, 0 to run for --duration")
	fs.Duration("duration", 0, "run length when --per-producer is 0")
	fs.Duration("report-every", time.Second, "progress log interval")
	fs.Int("retry-attempts", 0, "attempts per enqueue on Busy, 0 for unbounded")
	fs.Duration("backoff-max", 0, "exponential backoff cap on Busy, 0 to spin")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.Bool("log-development", false, "human-readable console logs")
	fs.Bool("log-evictions", false, "log every overwritten entry")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		bindErr = errors.Join(bindErr, v.BindPFlag(key, f))
	})
	if bindErr != nil {
		return nil, bindErr
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Stress(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Stress converts cfg into a stress run description.
func (c *Config) Stress() (stress.Config, error) {
	policy, err := ring.ParseOverwritePolicy(c.Policy)
	if err != nil {
		return stress.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.RetryAttempts < 0 {
		return stress.Config{}, fmt.Errorf("%w: retry_attempts %d", ErrInvalid, c.RetryAttempts)
	}

	rp := retry.Policy{MaxAttempts: c.RetryAttempts}
	if c.BackoffMax > 0 {
		rp.Backoff = retry.Exponential{Max: c.BackoffMax, Jitter: true}
	}

	return stress.Config{
		Capacity:    c.Capacity,
		Policy:      policy,
		Producers:   c.Producers,
		Consumers:   c.Consumers,
		PerProducer: c.PerProducer,
		Duration:    c.Duration,
		Retry:       rp,
		ReportEvery: c.ReportEvery,
	}, nil
}
