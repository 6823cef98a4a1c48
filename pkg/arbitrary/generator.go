package arbitrary

import "sync/atomic"

// Generator produces values of type T on demand.
type Generator[T any] interface {
	// Sample performs one full draw through the generator chain.
	Sample() (T, error)

	// RawValue returns the last undecorated draw of the innermost base
	// generator, or nil before the first draw. It never draws.
	RawValue() any

	// Fixed reports whether every draw provably yields the same value.
	Fixed() bool
}

// rawSlot holds the last raw draw of a base generator. Generators share no
// other mutable state, so the slot is the only thing concurrent samplers race
// on.
type rawSlot struct {
	v atomic.Pointer[any]
}

func (s *rawSlot) store(v any) {
	s.v.Store(&v)
}

func (s *rawSlot) load() any {
	p := s.v.Load()
	if p == nil {
		return nil
	}
	return *p
}

type just[T any] struct {
	v   T
	raw rawSlot
}

// Just returns a fixed generator that always yields v.
func Just[T any](v T) Generator[T] {
	return &just[T]{v: v}
}

func (g *just[T]) Sample() (T, error) {
	g.raw.store(g.v)
	return g.v, nil
}

func (g *just[T]) RawValue() any { return g.raw.load() }

func (g *just[T]) Fixed() bool { return true }
