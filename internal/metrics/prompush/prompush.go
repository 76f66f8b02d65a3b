// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus:
//
//   - Counters map onto client_golang CounterVec collectors.
//   - Durations map onto a SummaryVec.
//   - Collected metrics are pushed to a Pushgateway instance instead of
//     being exposed on a scrape endpoint, which fits short-lived CLI runs.
//
// All Prometheus-specific dependencies live here so the rest of the project
// can swap metric systems without touching the core packages.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"csvlint/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	runCounter  *prometheus.CounterVec // "csvlint_runs_total"
	runDuration *prometheus.SummaryVec // "csvlint_run_duration_seconds"
	errCounter  *prometheus.CounterVec // "csvlint_errors_total"
	rowCounter  *prometheus.CounterVec // "csvlint_rows_total"
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway "job" grouping key; gatewayURL is the base URL of the server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "csvlint"
	}

	reg := prometheus.NewRegistry()

	runCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvlint_runs_total",
			Help: "Total number of validation runs, partitioned by outcome.",
		},
		[]string{"status"},
	)
	runDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "csvlint_run_duration_seconds",
			Help:       "Duration of validation runs in seconds, partitioned by outcome.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"status"},
	)
	errCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvlint_errors_total",
			Help: "Validation errors per kind (file, structural, type, required, custom).",
		},
		[]string{"kind"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvlint_rows_total",
			Help: "Rows per disposition (seen, validated).",
		},
		[]string{"kind"},
	)

	for name, c := range map[string]prometheus.Collector{
		"run counter":  runCounter,
		"run duration": runDuration,
		"err counter":  errCounter,
		"row counter":  rowCounter,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register %s: %w", name, err)
		}
	}

	return &Backend{
		gatewayURL:  gatewayURL,
		jobName:     jobName,
		reg:         reg,
		runCounter:  runCounter,
		runDuration: runDuration,
		errCounter:  errCounter,
		rowCounter:  rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "csvlint_runs_total":
		b.runCounter.WithLabelValues(labels["status"]).Add(delta)
	case "csvlint_errors_total":
		b.errCounter.WithLabelValues(labels["kind"]).Add(delta)
	case "csvlint_rows_total":
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	if name != "csvlint_run_duration_seconds" {
		return
	}
	b.runDuration.WithLabelValues(labels["status"]).Observe(seconds)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
