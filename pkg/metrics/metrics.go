package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// atomicFloat64 stores the bits of a float64 in a uint64 for atomic access.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(val float64) {
	a.bits.Store(math.Float64bits(val))
}

// Add adds delta with a CAS loop.
func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	// Name returns the metric name.
	Name() string
	// Help returns the help text.
	Help() string
	// Type returns the metric type.
	Type() MetricType
	// Collect returns all metric samples for exposition, ordered by labels.
	Collect() []Sample
}

// Sample represents a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// family is the labelled series store shared by every metric type.
type family[V any] struct {
	name       string
	help       string
	kind       MetricType
	labelNames []string
	newValue   func() *V

	mu     sync.RWMutex
	series map[string]*series[V]
}

type series[V any] struct {
	labels map[string]string
	value  *V
}

func newFamily[V any](kind MetricType, name, help string, labelNames []string, newValue func() *V) *family[V] {
	return &family[V]{
		name:       name,
		help:       help,
		kind:       kind,
		labelNames: labelNames,
		newValue:   newValue,
		series:     make(map[string]*series[V]),
	}
}

func (f *family[V]) Name() string     { return f.name }
func (f *family[V]) Help() string     { return f.help }
func (f *family[V]) Type() MetricType { return f.kind }

// get returns the series for values, creating it on first use.
func (f *family[V]) get(values []string) (*V, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s %s expected %d labels, got %d", ErrLabelCountMismatch, f.kind, f.name, len(f.labelNames), len(values))
	}

	key := labelsKey(values)
	f.mu.RLock()
	s, ok := f.series[key]
	f.mu.RUnlock()
	if ok {
		return s.value, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok = f.series[key]; ok {
		return s.value, nil
	}
	labels := make(map[string]string, len(f.labelNames))
	for i, name := range f.labelNames {
		labels[name] = values[i]
	}
	s = &series[V]{labels: labels, value: f.newValue()}
	f.series[key] = s
	return s.value, nil
}

// each visits every series in label order.
func (f *family[V]) each(visit func(labels map[string]string, v *V)) {
	f.mu.RLock()
	keys := make([]string, 0, len(f.series))
	for k := range f.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	snapshot := make([]*series[V], len(keys))
	for i, k := range keys {
		snapshot[i] = f.series[k]
	}
	f.mu.RUnlock()

	for _, s := range snapshot {
		visit(s.labels, s.value)
	}
}

// ============================================================================
// Counter
// ============================================================================

// Counter is a monotonically increasing metric.
type Counter struct {
	*family[atomicFloat64]
}

func newCounter(name, help string, labelNames []string) *Counter {
	return &Counter{newFamily(MetricTypeCounter, name, help, labelNames, func() *atomicFloat64 { return &atomicFloat64{} })}
}

// WithLabels returns a CounterVec for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	v, err := c.get(values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{name: c.name, v: v}, nil
}

// Inc increments the counter by 1 (for counters without labels).
func (c *Counter) Inc() error {
	return c.Add(1)
}

// Add adds delta to the counter (for counters without labels).
func (c *Counter) Add(delta float64) error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Add(delta)
}

// Collect returns all metric samples.
func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// CounterVec is one label combination of a Counter.
type CounterVec struct {
	name string
	v    *atomicFloat64
}

// Inc increments the counter by 1.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add adds delta to the counter. Negative deltas are rejected.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return fmt.Errorf("%w: counter %s", ErrNegativeCounterValue, v.name)
	}
	v.v.Add(delta)
	return nil
}

// ============================================================================
// Gauge
// ============================================================================

// Gauge is a metric that can arbitrarily go up and down.
type Gauge struct {
	*family[atomicFloat64]
}

func newGauge(name, help string, labelNames []string) *Gauge {
	return &Gauge{newFamily(MetricTypeGauge, name, help, labelNames, func() *atomicFloat64 { return &atomicFloat64{} })}
}

// WithLabels returns a GaugeVec for the given label values.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	v, err := g.get(values)
	if err != nil {
		return nil, err
	}
	return &GaugeVec{v: v}, nil
}

// Set sets the gauge (for gauges without labels).
func (g *Gauge) Set(value float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Set(value)
	return nil
}

// Add adds delta to the gauge (for gauges without labels).
func (g *Gauge) Add(delta float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Add(delta)
	return nil
}

// Collect returns all metric samples.
func (g *Gauge) Collect() []Sample {
	var samples []Sample
	g.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: g.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// GaugeVec is one label combination of a Gauge.
type GaugeVec struct {
	v *atomicFloat64
}

// Set sets the gauge to value.
func (v *GaugeVec) Set(value float64) { v.v.Store(value) }

// Add adds delta to the gauge.
func (v *GaugeVec) Add(delta float64) { v.v.Add(delta) }

// ============================================================================
// Histogram
// ============================================================================

// Histogram tracks the distribution of observed values.
type Histogram struct {
	*family[histogramValue]
}

type histogramValue struct {
	buckets []float64
	counts  []atomic.Uint64
	sum     atomicFloat64
	count   atomic.Uint64
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	sorted := make([]float64, len(buckets))
	copy(sorted, buckets)
	sort.Float64s(sorted)
	if len(sorted) == 0 || !math.IsInf(sorted[len(sorted)-1], 1) {
		sorted = append(sorted, math.Inf(1))
	}

	return &Histogram{newFamily(MetricTypeHistogram, name, help, labelNames, func() *histogramValue {
		return &histogramValue{buckets: sorted, counts: make([]atomic.Uint64, len(sorted))}
	})}
}

// WithLabels returns a HistogramVec for the given label values.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	v, err := h.get(values)
	if err != nil {
		return nil, err
	}
	return &HistogramVec{hv: v}, nil
}

// Observe records a value (for histograms without labels).
func (h *Histogram) Observe(value float64) error {
	vec, err := h.WithLabels()
	if err != nil {
		return err
	}
	vec.Observe(value)
	return nil
}

// Collect returns the cumulative bucket, _sum and _count samples.
func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.each(func(labels map[string]string, hv *histogramValue) {
		cumulative := uint64(0)
		for i, bound := range hv.buckets {
			cumulative += hv.counts[i].Load()
			bucketLabels := make(map[string]string, len(labels)+1)
			for k, v := range labels {
				bucketLabels[k] = v
			}
			bucketLabels["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: bucketLabels, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: labels, Value: hv.sum.Load()},
			Sample{Name: h.name + "_count", Labels: labels, Value: float64(hv.count.Load())},
		)
	})
	return samples
}

// HistogramVec is one label combination of a Histogram.
type HistogramVec struct {
	hv *histogramValue
}

// Observe records a value.
func (v *HistogramVec) Observe(value float64) {
	i := sort.SearchFloat64s(v.hv.buckets, value)
	if i < len(v.hv.counts) {
		v.hv.counts[i].Add(1)
	}
	v.hv.sum.Add(value)
	v.hv.count.Add(1)
}

func labelsKey(values []string) string {
	return strings.Join(values, "\x00")
}

// AttemptBuckets suit retry attempt counts up to DefaultMaxTries.
var AttemptBuckets = []float64{1, 2, 5, 10, 50, 100, 500, 1000, 5000, 10000}
