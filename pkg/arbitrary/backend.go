package arbitrary

import (
	"math/rand/v2"
	"sync"
)

// DefaultASCIIBias is the share of character draws a RandBackend takes from
// the ASCII members of a domain.
const DefaultASCIIBias = 0.5

// Backend is the randomness source every base generator draws from. Given a
// domain descriptor it returns one member of that domain. Implementations must
// be safe for concurrent use.
type Backend interface {
	// DrawInt returns a member of d.
	DrawInt(d IntDomain) int64

	// DrawRune returns a member of d.
	DrawRune(d RuneDomain) rune

	// Bernoulli performs one independent trial that succeeds with
	// probability p.
	Bernoulli(p float64) bool
}

// RandBackend is a Backend on top of math/rand/v2. Integer draws are uniform
// over the domain members. Character draws are uniform except that a share of
// them (the ASCII bias) is taken from the domain's ASCII members when it has
// any, which keeps character filters over wide domains satisfiable.
type RandBackend struct {
	rng       *rand.Rand
	asciiBias float64
	mu        sync.Mutex
}

// BackendOption customizes a RandBackend.
type BackendOption func(*RandBackend)

// WithASCIIBias sets the share of character draws taken from ASCII members.
// Values are clamped to [0, 1].
func WithASCIIBias(p float64) BackendOption {
	return func(b *RandBackend) {
		switch {
		case p != p || p < 0: // NaN or negative
			b.asciiBias = 0
		case p > 1:
			b.asciiBias = 1
		default:
			b.asciiBias = p
		}
	}
}

// NewRandBackend creates a backend drawing from rng. A nil rng uses the
// global math/rand/v2 source.
func NewRandBackend(rng *rand.Rand, opts ...BackendOption) *RandBackend {
	b := &RandBackend{rng: rng, asciiBias: DefaultASCIIBias}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewSeededBackend creates a deterministic backend from a PCG source.
func NewSeededBackend(seed uint64, opts ...BackendOption) *RandBackend {
	return NewRandBackend(rand.New(rand.NewPCG(seed, 0)), opts...)
}

var defaultBackend = NewRandBackend(nil)

// DefaultBackend returns the shared backend on the global source.
func DefaultBackend() Backend {
	return defaultBackend
}

func orDefault(b Backend) Backend {
	if b == nil {
		return defaultBackend
	}
	return b
}

// DrawInt returns a uniformly chosen member of d.
func (b *RandBackend) DrawInt(d IntDomain) int64 {
	n, full := d.Size()
	if full {
		return int64(b.uint64())
	}
	if n == 0 {
		return d.Min
	}
	return d.At(b.uint64N(n))
}

// DrawRune returns a member of d, biased toward its ASCII members.
func (b *RandBackend) DrawRune(d RuneDomain) rune {
	if ascii := d.ASCII(); len(ascii) > 0 && b.asciiBias > 0 && b.Bernoulli(b.asciiBias) {
		return ascii[b.uint64N(uint64(len(ascii)))]
	}
	n := d.Size()
	if n == 0 {
		return 0
	}
	return d.At(b.uint64N(n))
}

// Bernoulli returns true with probability p.
func (b *RandBackend) Bernoulli(p float64) bool {
	switch {
	case p <= 0 || p != p:
		return false
	case p >= 1:
		return true
	}
	return b.float64() < p
}

func (b *RandBackend) uint64() uint64 {
	if b.rng == nil {
		return rand.Uint64()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Uint64()
}

func (b *RandBackend) uint64N(n uint64) uint64 {
	if n <= 1 {
		return 0
	}
	if b.rng == nil {
		return rand.Uint64N(n)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Uint64N(n)
}

func (b *RandBackend) float64() float64 {
	if b.rng == nil {
		return rand.Float64()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64()
}
