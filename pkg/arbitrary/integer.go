package arbitrary

import (
	"fmt"
	"math"
	"unsafe"
)

// Integer is the set of signed integer types with a generator factory.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// width holds the representable range of one integer width.
type width struct {
	min, max int64
}

var widths = map[uintptr]width{
	1: {math.MinInt8, math.MaxInt8},
	2: {math.MinInt16, math.MaxInt16},
	4: {math.MinInt32, math.MaxInt32},
	8: {math.MinInt64, math.MaxInt64},
}

func widthOf[T Integer]() width {
	var zero T
	return widths[unsafe.Sizeof(zero)]
}

// IntGenerator draws integers of type T from an IntDomain. Shape methods never
// modify the receiver: each returns a new generator with a wholly new domain.
type IntGenerator[T Integer] struct {
	backend Backend
	domain  IntDomain
	raw     rawSlot
}

func newIntGenerator[T Integer](b Backend, d IntDomain) *IntGenerator[T] {
	return &IntGenerator[T]{backend: orDefault(b), domain: d}
}

func fullWidth[T Integer](b Backend) *IntGenerator[T] {
	w := widthOf[T]()
	return newIntGenerator[T](b, IntDomain{Min: w.min, Max: w.max})
}

// Int8s returns a generator over all int8 values. A nil backend uses
// DefaultBackend.
func Int8s(b Backend) *IntGenerator[int8] { return fullWidth[int8](b) }

// Int16s returns a generator over all int16 values.
func Int16s(b Backend) *IntGenerator[int16] { return fullWidth[int16](b) }

// Int32s returns a generator over all int32 values.
func Int32s(b Backend) *IntGenerator[int32] { return fullWidth[int32](b) }

// Int64s returns a generator over all int64 values.
func Int64s(b Backend) *IntGenerator[int64] { return fullWidth[int64](b) }

// Ints returns a generator over all int values.
func Ints(b Backend) *IntGenerator[int] { return fullWidth[int](b) }

// Domain returns the active domain descriptor.
func (g *IntGenerator[T]) Domain() IntDomain { return g.domain }

func (g *IntGenerator[T]) reshape(d IntDomain) *IntGenerator[T] {
	return newIntGenerator[T](g.backend, d)
}

// WithRange restricts draws to [min, max].
func (g *IntGenerator[T]) WithRange(min, max T) (*IntGenerator[T], error) {
	d := IntDomain{Min: int64(min), Max: int64(max)}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("withRange: %w", err)
	}
	return g.reshape(d), nil
}

// Positive restricts draws to [1, max of T].
func (g *IntGenerator[T]) Positive() *IntGenerator[T] {
	return g.reshape(IntDomain{Min: 1, Max: widthOf[T]().max})
}

// Negative restricts draws to [min of T, -1].
func (g *IntGenerator[T]) Negative() *IntGenerator[T] {
	return g.reshape(IntDomain{Min: widthOf[T]().min, Max: -1})
}

// Even restricts draws to the even values of T.
func (g *IntGenerator[T]) Even() *IntGenerator[T] {
	w := widthOf[T]()
	return g.reshape(IntDomain{Min: w.min, Max: w.max, Parity: EvenParity})
}

// Odd restricts draws to the odd values of T.
func (g *IntGenerator[T]) Odd() *IntGenerator[T] {
	w := widthOf[T]()
	return g.reshape(IntDomain{Min: w.min, Max: w.max, Parity: OddParity})
}

// GreaterOrEqual restricts draws to [v, max of T].
func (g *IntGenerator[T]) GreaterOrEqual(v T) *IntGenerator[T] {
	return g.reshape(IntDomain{Min: int64(v), Max: widthOf[T]().max})
}

// LessOrEqual restricts draws to [min of T, v].
func (g *IntGenerator[T]) LessOrEqual(v T) *IntGenerator[T] {
	return g.reshape(IntDomain{Min: widthOf[T]().min, Max: int64(v)})
}

// ASCII restricts draws to the ASCII code range [0, 127].
func (g *IntGenerator[T]) ASCII() *IntGenerator[T] {
	return g.reshape(IntDomain{Min: 0, Max: 127})
}

// Sample draws one value from the backend.
func (g *IntGenerator[T]) Sample() (T, error) {
	v := g.backend.DrawInt(g.domain)
	if !g.domain.Contains(v) {
		return 0, fmt.Errorf("%w: %d not in %s", ErrBackendContract, v, g.domain)
	}
	out := T(v)
	g.raw.store(out)
	return out, nil
}

// RawValue returns the last drawn value, or nil before the first draw.
func (g *IntGenerator[T]) RawValue() any { return g.raw.load() }

// Fixed reports whether the domain has a single member.
func (g *IntGenerator[T]) Fixed() bool {
	n, full := g.domain.Size()
	return !full && n == 1
}
