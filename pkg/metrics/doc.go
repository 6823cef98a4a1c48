// Package metrics provides Prometheus-compatible metrics for generator runs.
//
// This package implements the Prometheus text exposition format (text/plain; version=0.0.4)
// without any external dependencies.
//
// Supported metric types:
//   - Counter: monotonically increasing value
//   - Gauge: value that can go up or down
//   - Histogram: distribution of values with configurable buckets
//
// All metrics are thread-safe and can be updated from multiple goroutines.
//
// # Generator Metrics
//
// GeneratorMetrics implements arbitrary.Observer:
//
//   - arbitrary_samples_total: constrained draws that succeeded (labels: op)
//   - arbitrary_sample_attempts: draws needed per success (labels: op)
//   - arbitrary_failures_total: draws that gave up (labels: op, reason)
//   - arbitrary_unique_scope_size: seen-set size of unique wrappers (labels: op)
//
// # Usage
//
//	reg := metrics.NewRegistry()
//	gm, err := metrics.NewGeneratorMetrics(reg)
//	if err != nil {
//	    return err
//	}
//	g := arbitrary.Unique(arbitrary.Int8s(nil).ASCII(), arbitrary.WithObserver(gm))
//	...
//	_, _ = reg.WriteTo(os.Stderr)
package metrics
