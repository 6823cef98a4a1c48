package arbitrary

import (
	"fmt"
	"math"
	"sync"
)

type mapped[T, U any] struct {
	inner Generator[T]
	f     func(T) (U, error)
}

// Map returns a generator that applies f to every draw of g. It is fixed
// whenever g is.
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return &mapped[T, U]{inner: g, f: func(v T) (U, error) { return f(v), nil }}
}

// TryMap is Map for transforms that can fail. An error from f is returned
// from Sample.
func TryMap[T, U any](g Generator[T], f func(T) (U, error)) Generator[U] {
	return &mapped[T, U]{inner: g, f: f}
}

func (g *mapped[T, U]) Sample() (U, error) {
	v, err := g.inner.Sample()
	if err != nil {
		var zero U
		return zero, err
	}
	return g.f(v)
}

func (g *mapped[T, U]) RawValue() any { return g.inner.RawValue() }

func (g *mapped[T, U]) Fixed() bool { return g.inner.Fixed() }

type filtered[T any] struct {
	inner Generator[T]
	pred  func(T) (bool, error)
	gov   governor
}

// Filter returns a generator that redraws from g until p holds, up to the
// retry budget. A fixed g is checked once; if its value fails p, Sample
// returns a *ConstraintError wrapping ErrFixedValueFilterMiss.
func Filter[T any](g Generator[T], p func(T) bool, opts ...Option) Generator[T] {
	return newFiltered(g, "filter", func(v T) (bool, error) { return p(v), nil }, opts)
}

// TryFilter is Filter for predicates that can fail. A predicate error ends
// the draw and is returned unchanged.
func TryFilter[T any](g Generator[T], p func(T) (bool, error), opts ...Option) Generator[T] {
	return newFiltered(g, "filter", p, opts)
}

func newFiltered[T any](g Generator[T], op string, p func(T) (bool, error), opts []Option) *filtered[T] {
	return &filtered[T]{inner: g, pred: p, gov: newGovernor(op, opts)}
}

func (g *filtered[T]) Sample() (T, error) {
	return governedDraw(&g.gov, g.inner, g.pred)
}

func (g *filtered[T]) RawValue() any { return g.inner.RawValue() }

func (g *filtered[T]) Fixed() bool { return g.inner.Fixed() }

type nullable[T any] struct {
	inner   Generator[T]
	p       float64
	backend Backend
}

// InjectNull returns a generator that yields nil with probability p and
// otherwise a pointer to a fresh draw of g. The trial runs on the backend set
// with WithBackend, or DefaultBackend.
func InjectNull[T any](g Generator[T], p float64, opts ...Option) (Generator[*T], error) {
	if err := validateProbability(p); err != nil {
		return nil, fmt.Errorf("injectNull: %w", err)
	}
	o := newOptions(opts)
	return &nullable[T]{inner: g, p: p, backend: o.backend}, nil
}

func validateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return configError("probability must be between 0.0 and 1.0, got %v", p)
	}
	return nil
}

func (g *nullable[T]) Sample() (*T, error) {
	if g.backend.Bernoulli(g.p) {
		return nil, nil
	}
	v, err := g.inner.Sample()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (g *nullable[T]) RawValue() any { return g.inner.RawValue() }

func (g *nullable[T]) Fixed() bool {
	return g.p == 1 || (g.p == 0 && g.inner.Fixed())
}

type unique[T any, K comparable] struct {
	inner Generator[T]
	key   func(T) K
	gov   governor

	mu   sync.Mutex
	seen map[K]struct{}
}

// Unique returns a generator that never yields the same value twice. The
// seen-set belongs to the returned instance and is never cleared. Over a fixed
// g the first call succeeds and every later call fails immediately.
func Unique[T comparable](g Generator[T], opts ...Option) Generator[T] {
	return UniqueBy(g, func(v T) T { return v }, opts...)
}

// UniqueBy is Unique where two values collide when key maps them to the same
// comparable value.
func UniqueBy[T any, K comparable](g Generator[T], key func(T) K, opts ...Option) Generator[T] {
	return &unique[T, K]{
		inner: g,
		key:   key,
		gov:   newGovernor("unique", opts),
		seen:  make(map[K]struct{}),
	}
}

func (g *unique[T, K]) Sample() (T, error) {
	return governedDraw(&g.gov, g.inner, g.accept)
}

// accept checks and inserts under one lock so concurrent samplers never hand
// out the same value.
func (g *unique[T, K]) accept(v T) (bool, error) {
	k := g.key(v)
	g.mu.Lock()
	if _, dup := g.seen[k]; dup {
		g.mu.Unlock()
		return false, nil
	}
	g.seen[k] = struct{}{}
	size := len(g.seen)
	g.mu.Unlock()

	if g.gov.observer != nil {
		g.gov.observer.ObserveScope(g.gov.op, size)
	}
	return true, nil
}

func (g *unique[T, K]) RawValue() any { return g.inner.RawValue() }

func (g *unique[T, K]) Fixed() bool { return false }
