package metrics

import (
	"errors"

	"github.com/getmockd/arbitrary/pkg/arbitrary"
)

// Failure reasons used as the "reason" label of arbitrary_failures_total.
const (
	ReasonFixedValue  = "fixed_value"
	ReasonRetryBudget = "retry_budget"
	ReasonOther       = "other"
)

// GeneratorMetrics records refinement outcomes. It implements
// arbitrary.Observer and is safe for concurrent use.
type GeneratorMetrics struct {
	// SamplesTotal counts successful constrained draws. Labels: op
	SamplesTotal *Counter

	// SampleAttempts is the distribution of draws needed per success. Labels: op
	SampleAttempts *Histogram

	// FailuresTotal counts draws that gave up. Labels: op, reason
	FailuresTotal *Counter

	// UniqueScopeSize is the latest seen-set size of unique wrappers. Labels: op
	UniqueScopeSize *Gauge
}

var _ arbitrary.Observer = (*GeneratorMetrics)(nil)

// NewGeneratorMetrics registers the generator metrics on r.
func NewGeneratorMetrics(r *Registry) (*GeneratorMetrics, error) {
	var (
		m   GeneratorMetrics
		err error
	)
	if m.SamplesTotal, err = r.NewCounter("arbitrary_samples_total", "Constrained draws that succeeded", "op"); err != nil {
		return nil, err
	}
	if m.SampleAttempts, err = r.NewHistogram("arbitrary_sample_attempts", "Draws needed per constrained sample", AttemptBuckets, "op"); err != nil {
		return nil, err
	}
	if m.FailuresTotal, err = r.NewCounter("arbitrary_failures_total", "Constrained draws that gave up", "op", "reason"); err != nil {
		return nil, err
	}
	if m.UniqueScopeSize, err = r.NewGauge("arbitrary_unique_scope_size", "Values held by a uniqueness scope", "op"); err != nil {
		return nil, err
	}
	return &m, nil
}

// ObserveSample implements arbitrary.Observer.
func (m *GeneratorMetrics) ObserveSample(op string, attempts int) {
	if vec, err := m.SamplesTotal.WithLabels(op); err == nil {
		_ = vec.Inc()
	}
	if vec, err := m.SampleAttempts.WithLabels(op); err == nil {
		vec.Observe(float64(attempts))
	}
}

// ObserveFailure implements arbitrary.Observer.
func (m *GeneratorMetrics) ObserveFailure(op string, err error) {
	if vec, lerr := m.FailuresTotal.WithLabels(op, FailureReason(err)); lerr == nil {
		_ = vec.Inc()
	}
}

// ObserveScope implements arbitrary.Observer.
func (m *GeneratorMetrics) ObserveScope(op string, size int) {
	if vec, err := m.UniqueScopeSize.WithLabels(op); err == nil {
		vec.Set(float64(size))
	}
}

// FailureReason classifies a sampling error for the reason label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, arbitrary.ErrFixedValueFilterMiss):
		return ReasonFixedValue
	case errors.Is(err, arbitrary.ErrRetryBudgetExhausted):
		return ReasonRetryBudget
	default:
		return ReasonOther
	}
}
