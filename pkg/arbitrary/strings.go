package arbitrary

import (
	"fmt"
	"strings"
)

// DefaultMaxLength is the upper bound of the default string length domain.
const DefaultMaxLength = 20

// StringGenerator composes a length generator with a per-position character
// generator. Presets replace the character generator; FilterCharacter wraps
// it.
type StringGenerator struct {
	backend Backend
	lengths Generator[int]
	chars   Generator[rune]
	raw     rawSlot
}

// Strings returns a generator of strings of 0 to DefaultMaxLength
// unrestricted code points. A nil backend uses DefaultBackend.
func Strings(b Backend) *StringGenerator {
	b = orDefault(b)
	lengths := newIntGenerator[int](b, IntDomain{Min: 0, Max: DefaultMaxLength})
	return &StringGenerator{backend: b, lengths: lengths, chars: Characters(b)}
}

func (g *StringGenerator) with(lengths Generator[int], chars Generator[rune]) *StringGenerator {
	return &StringGenerator{backend: g.backend, lengths: lengths, chars: chars}
}

// WithLength restricts string lengths to [min, max] code points.
func (g *StringGenerator) WithLength(min, max int) (*StringGenerator, error) {
	if min < 0 {
		return nil, fmt.Errorf("withLength: %w", configError("negative minimum length %d", min))
	}
	d := IntDomain{Min: int64(min), Max: int64(max)}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("withLength: %w", err)
	}
	return g.with(newIntGenerator[int](g.backend, d), g.chars), nil
}

// WithLengths draws string lengths from lengths. A negative draw fails the
// sample with ErrBackendContract.
func (g *StringGenerator) WithLengths(lengths Generator[int]) *StringGenerator {
	return g.with(lengths, g.chars)
}

// WithCharacters draws every position from chars.
func (g *StringGenerator) WithCharacters(chars Generator[rune]) *StringGenerator {
	return g.with(g.lengths, chars)
}

// FilterCharacter keeps only strings whose every character satisfies p. Each
// position is redrawn until p holds, under the usual retry budget.
func (g *StringGenerator) FilterCharacter(p func(rune) bool, opts ...Option) *StringGenerator {
	return g.TryFilterCharacter(func(r rune) (bool, error) { return p(r), nil }, opts...)
}

// TryFilterCharacter is FilterCharacter for predicates that can fail.
func (g *StringGenerator) TryFilterCharacter(p func(rune) (bool, error), opts ...Option) *StringGenerator {
	return g.with(g.lengths, newFiltered(g.chars, "filterCharacter", p, opts))
}

func (g *StringGenerator) preset(c *CharGenerator) *StringGenerator {
	return g.with(g.lengths, c)
}

// Numeric draws characters from 0-9.
func (g *StringGenerator) Numeric() *StringGenerator {
	return g.preset(Characters(g.backend).Numeric())
}

// Alphabetic draws characters from a-z and A-Z.
func (g *StringGenerator) Alphabetic() *StringGenerator {
	return g.preset(Characters(g.backend).Alpha())
}

// AlphaNumeric draws characters from a-z, A-Z and 0-9.
func (g *StringGenerator) AlphaNumeric() *StringGenerator {
	return g.preset(Characters(g.backend).AlphaNumeric())
}

// ASCII draws characters from U+0000..U+007F.
func (g *StringGenerator) ASCII() *StringGenerator {
	return g.preset(Characters(g.backend).ASCII())
}

// Hangul draws characters from the Hangul syllables block.
func (g *StringGenerator) Hangul() *StringGenerator {
	return g.preset(Characters(g.backend).Hangul())
}

// Sample draws a length, then each character in position order.
func (g *StringGenerator) Sample() (string, error) {
	n, err := g.lengths.Sample()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length %d", ErrBackendContract, n)
	}

	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		r, err := g.chars.Sample()
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	s := sb.String()
	g.raw.store(s)
	return s, nil
}

// RawValue returns the last assembled string, or nil before the first draw.
func (g *StringGenerator) RawValue() any { return g.raw.load() }

// Fixed reports whether every draw yields the same string.
func (g *StringGenerator) Fixed() bool {
	if !g.lengths.Fixed() {
		return false
	}
	if g.chars.Fixed() {
		return true
	}
	switch lg := g.lengths.(type) {
	case *IntGenerator[int]:
		return lg.Domain().Min == 0
	case *just[int]:
		return lg.v == 0
	}
	return false
}
