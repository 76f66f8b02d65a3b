// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from validation runs.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and
//     duration observations.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured. The validator core never calls this package;
//     only the CLI records run-level metrics.
//   - Concrete metric systems live in subpackages (e.g. prompush for a
//     Prometheus Pushgateway) so the rest of the codebase depends only on
//     this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)        {}
func (nopBackend) ObserveDuration(name string, seconds float64, labels Labels) {}
func (nopBackend) Flush() error                                                { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordRun measures one validation run: outcome plus wall-clock duration.
func RecordRun(job string, valid bool, d time.Duration) {
	status := "valid"
	if !valid {
		status = "invalid"
	}
	lbls := Labels{"job": job, "status": status}
	backend.IncCounter("csvlint_runs_total", 1, lbls)
	backend.ObserveDuration("csvlint_run_duration_seconds", d.Seconds(), lbls)
}

// RecordErrors increments the per-kind error counter for a run.
//
// Kinds mirror the validation taxonomy: "file", "structural", "type",
// "required", "custom".
func RecordErrors(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("csvlint_errors_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordRows counts rows by disposition, e.g. "seen" and "validated".
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("csvlint_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
