// Package metrics counts source outcomes and cache traffic for a vocab run
// and can dump them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/vocab/internal/provider"
)

const namespace = "vocab"

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	reg *prometheus.Registry

	sourceCalls    *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	lookups        prometheus.Counter
	lookupDuration prometheus.Histogram
}

// NewRecorder registers the vocab collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		sourceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_calls_total",
				Help:      "Source adapter calls by outcome.",
			},
			[]string{"source", "status"},
		),
		sourceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_call_duration_seconds",
				Help:      "Source adapter call latency.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"source"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache reads by result.",
			},
			[]string{"result"},
		),
		lookups: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Merged lookups, including base-form recursion.",
			},
		),
		lookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lookup_duration_seconds",
				Help:      "End-to-end merged lookup latency.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
	}
}

// SourceCall records one adapter call.
func (r *Recorder) SourceCall(source string, status provider.Status, d time.Duration) {
	r.sourceCalls.WithLabelValues(source, status.String()).Inc()
	r.sourceDuration.WithLabelValues(source).Observe(d.Seconds())
}

// CacheLookup records a cache read.
func (r *Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Lookup records a completed merged lookup.
func (r *Recorder) Lookup(d time.Duration) {
	r.lookups.Inc()
	r.lookupDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile atomically writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
