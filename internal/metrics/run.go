package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values for the runs counter.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeInput    = "input_error"
	OutcomeTimeout  = "timeout"
	OutcomeCanceled = "canceled"
	OutcomeMismatch = "mismatch"
)

// namespace prefixes every metric exported by this package.
const namespace = "divcalc"

// RunStats summarizes one completed division pass for metric export.
type RunStats struct {
	Outcome       string
	Divisor       uint64
	Remainder     uint64
	DigitsRead    int64
	DigitsWritten int64
	BytesRead     int64
	Duration      time.Duration
}

// RunMetrics collects the Prometheus metrics of a divcalc process. It owns a
// dedicated registry so runs never leak metrics into the global default
// registry, which keeps tests and repeated REPL runs independent.
type RunMetrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	digitsRead    prometheus.Counter
	digitsWritten prometheus.Counter
	bytesRead     prometheus.Counter
	runDuration   prometheus.Gauge
	divisor       prometheus.Gauge
	remainder     prometheus.Gauge
	peakHeap      prometheus.Gauge
}

// NewRunMetrics creates a RunMetrics with all collectors registered,
// including the Go runtime collector.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Division runs by outcome.",
		}, []string{"outcome"}),
		digitsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "numerator_digits_total",
			Help:      "Numerator digits consumed.",
		}),
		digitsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotient_digits_total",
			Help:      "Quotient digits emitted.",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "numerator_bytes_total",
			Help:      "Numerator bytes consumed, including whitespace.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
		divisor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "divisor",
			Help:      "Divisor of the last run.",
		}),
		remainder: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remainder",
			Help:      "Final remainder of the last run.",
		}),
		peakHeap: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peak_heap_bytes",
			Help:      "High-water heap allocation observed during the run.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.runsTotal,
		m.digitsRead,
		m.digitsWritten,
		m.bytesRead,
		m.runDuration,
		m.divisor,
		m.remainder,
		m.peakHeap,
	)
	return m
}

// Record folds the statistics of one completed run into the collectors.
func (m *RunMetrics) Record(stats RunStats) {
	outcome := stats.Outcome
	if outcome == "" {
		outcome = OutcomeSuccess
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.digitsRead.Add(float64(stats.DigitsRead))
	m.digitsWritten.Add(float64(stats.DigitsWritten))
	m.bytesRead.Add(float64(stats.BytesRead))
	m.runDuration.Set(stats.Duration.Seconds())
	m.divisor.Set(float64(stats.Divisor))
	m.remainder.Set(float64(stats.Remainder))
}

// SetPeakHeap records the high-water heap allocation in bytes.
func (m *RunMetrics) SetPeakHeap(bytes uint64) {
	m.peakHeap.Set(float64(bytes))
}

// Gatherer exposes the underlying registry for exposition.
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the collected metrics to path in the Prometheus text
// exposition format, following the node_exporter textfile collector
// convention (write to a temporary file, then rename into place).
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
