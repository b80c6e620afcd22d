package ring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opEnqueue = iota
	opDequeue
	opCount
)

var opNames = [opCount]string{"enqueue", "dequeue"}

// queueMetrics mirrors Statistics into Prometheus.
type queueMetrics struct {
	reg        prometheus.Registerer
	collectors []prometheus.Collector

	// ops is resolved per op and status up front to keep label lookups off
	// the hot path.
	ops       [opCount][len(statusNames)]prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge
}

func newQueueMetrics(reg prometheus.Registerer, name string, capacity int) (*queueMetrics, error) {
	labels := prometheus.Labels{"queue": name}

	opsVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "mpmcring",
		Subsystem:   "queue",
		Name:        "operations_total",
		Help:        "Queue operations by operation and status",
		ConstLabels: labels,
	}, []string{"op", "status"})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "mpmcring",
		Subsystem:   "queue",
		Name:        "evictions_total",
		Help:        "Elements dropped by the overwrite policy",
		ConstLabels: labels,
	})
	size := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "mpmcring",
		Subsystem:   "queue",
		Name:        "size",
		Help:        "Current number of occupied slots",
		ConstLabels: labels,
	})
	capGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "mpmcring",
		Subsystem:   "queue",
		Name:        "capacity",
		Help:        "Number of slots",
		ConstLabels: labels,
	})
	capGauge.Set(float64(capacity))

	m := &queueMetrics{
		reg:       reg,
		evictions: evictions,
		size:      size,
	}
	for _, c := range []prometheus.Collector{opsVec, evictions, size, capGauge} {
		if err := reg.Register(c); err != nil {
			m.unregister()
			return nil, fmt.Errorf("register metrics for queue %q: %w", name, err)
		}
		m.collectors = append(m.collectors, c)
	}

	for op := range opNames {
		for st := range statusNames {
			m.ops[op][st] = opsVec.WithLabelValues(opNames[op], Status(st).String())
		}
	}
	return m, nil
}

func (m *queueMetrics) record(op int, st Status) {
	m.ops[op][st].Inc()
}

func (m *queueMetrics) unregister() {
	for _, c := range m.collectors {
		m.reg.Unregister(c)
	}
	m.collectors = nil
}
