// Package metrics collects per-invocation counters with the Prometheus
// client and writes them out in the textfile-collector format. A CLI
// process is too short-lived to be scraped, so the registry is flushed
// to a file that node_exporter picks up.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dadjoke"

// Request outcomes used as the "outcome" label of the request counter.
const (
	OutcomeOK       = "ok"
	OutcomeNetwork  = "network"
	OutcomeProtocol = "protocol"
	OutcomeInvalid  = "invalid"
)

// Metrics owns a private registry. A nil *Metrics is valid and records
// nothing, so components can accept it unconditionally.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     prometheus.Histogram
	appended    prometheus.Counter
	leaderboard prometheus.Gauge
	textfile    string
}

// New creates the collectors and registers them. textfile may be empty,
// in which case Flush is a no-op.
func New(textfile string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Search API requests by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Search API request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Jokes appended to the record store.",
		}),
		leaderboard: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Records read from the store by the last leaderboard run.",
		}),
		textfile: textfile,
	}
	m.registry.MustRegister(m.requests, m.latency, m.appended, m.leaderboard)
	return m
}

// ObserveRequest records one API request with its outcome and latency.
func (m *Metrics) ObserveRequest(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.latency.Observe(d.Seconds())
}

// RecordAppended counts one successful store append.
func (m *Metrics) RecordAppended() {
	if m == nil {
		return
	}
	m.appended.Inc()
}

// SetStoreRecords records the number of records a leaderboard run read.
func (m *Metrics) SetStoreRecords(n int) {
	if m == nil {
		return
	}
	m.leaderboard.Set(float64(n))
}

// Registry exposes the underlying registry as a Gatherer.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// Flush writes the registry to the configured textfile.
func (m *Metrics) Flush() error {
	if m == nil || m.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", m.textfile, err)
	}
	return nil
}
