package ring

import "github.com/prometheus/client_golang/prometheus"

// Option configures a Queue at construction.
type Option func(*options)

type options struct {
	observer   Observer
	registerer prometheus.Registerer
	name       string
}

// WithObserver registers the receiver of eviction notifications.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithMetrics exports the queue statistics as Prometheus metrics labelled
// with name. A nil registerer or empty name disables export.
func WithMetrics(reg prometheus.Registerer, name string) Option {
	return func(opts *options) {
		if reg != nil && name != "" {
			opts.registerer = reg
			opts.name = name
		}
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
