package arbitrary

import (
	"sync"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedBackend replays fixed draws in order, cycling when exhausted.
type scriptedBackend struct {
	mu    sync.Mutex
	ints  []int64
	runes []rune
	bools []bool
	i, r  int
	b     int
	calls int
}

func (s *scriptedBackend) DrawInt(IntDomain) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v := s.ints[s.i%len(s.ints)]
	s.i++
	return v
}

func (s *scriptedBackend) DrawRune(RuneDomain) rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v := s.runes[s.r%len(s.runes)]
	s.r++
	return v
}

func (s *scriptedBackend) Bernoulli(float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.bools[s.b%len(s.bools)]
	s.b++
	return v
}

func (s *scriptedBackend) drawCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRandBackend_DrawIntStaysInDomain(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(1)
	domains := []IntDomain{
		{Min: -3, Max: 3},
		{Min: -128, Max: 127, Parity: OddParity},
		{Min: 0, Max: 0},
		{Min: -1 << 63, Max: 1<<63 - 1},
		{Min: 10, Max: 20, Parity: EvenParity},
	}
	for _, d := range domains {
		for i := 0; i < 1000; i++ {
			v := b.DrawInt(d)
			require.Truef(t, d.Contains(v), "%d not in %s", v, d)
		}
	}
}

func TestRandBackend_DrawRuneStaysInDomain(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(2)
	for name, d := range Domains() {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				r := b.DrawRune(d)
				require.Truef(t, d.Contains(r), "%U not in %s", r, name)
			}
		})
	}
}

func TestRandBackend_ASCIIBias(t *testing.T) {
	t.Parallel()

	t.Run("zero bias rarely hits ascii in the full domain", func(t *testing.T) {
		b := NewSeededBackend(3, WithASCIIBias(0))
		ascii := 0
		for i := 0; i < 1000; i++ {
			if b.DrawRune(anyDomain) <= unicode.MaxASCII {
				ascii++
			}
		}
		assert.Less(t, ascii, 10)
	})

	t.Run("full bias always hits ascii", func(t *testing.T) {
		b := NewSeededBackend(3, WithASCIIBias(1))
		for i := 0; i < 1000; i++ {
			require.LessOrEqual(t, b.DrawRune(anyDomain), rune(unicode.MaxASCII))
		}
	})

	t.Run("domains without ascii members ignore the bias", func(t *testing.T) {
		b := NewSeededBackend(3, WithASCIIBias(1))
		for i := 0; i < 100; i++ {
			require.True(t, hangulDomain.Contains(b.DrawRune(hangulDomain)))
		}
	})
}

func TestRandBackend_Bernoulli(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(4)
	for i := 0; i < 100; i++ {
		assert.False(t, b.Bernoulli(0))
		assert.False(t, b.Bernoulli(-1))
		assert.True(t, b.Bernoulli(1))
		assert.True(t, b.Bernoulli(2))
	}

	hits := 0
	for i := 0; i < 10_000; i++ {
		if b.Bernoulli(0.3) {
			hits++
		}
	}
	assert.InDelta(t, 3000, hits, 300)
}

func TestNewSeededBackend_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := NewSeededBackend(99), NewSeededBackend(99)
	d := IntDomain{Min: -1000, Max: 1000}
	for i := 0; i < 100; i++ {
		require.Equal(t, a.DrawInt(d), b.DrawInt(d))
		require.Equal(t, a.DrawRune(anyDomain), b.DrawRune(anyDomain))
	}
}

func TestDefaultBackend_ConcurrentUse(t *testing.T) {
	t.Parallel()

	d := IntDomain{Min: 0, Max: 9}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				assert.True(t, d.Contains(DefaultBackend().DrawInt(d)))
			}
		}()
	}
	wg.Wait()
}
