package arbitrary

import (
	"fmt"
	"unicode"
)

// CharGenerator draws single Unicode code points from a RuneDomain. Like
// IntGenerator, every shape method returns a new generator.
type CharGenerator struct {
	backend Backend
	domain  RuneDomain
	raw     rawSlot
}

// Characters returns a generator over every Unicode scalar value. A nil
// backend uses DefaultBackend.
func Characters(b Backend) *CharGenerator {
	return newCharGenerator(b, anyDomain)
}

func newCharGenerator(b Backend, d RuneDomain) *CharGenerator {
	return &CharGenerator{backend: orDefault(b), domain: d}
}

func (g *CharGenerator) reshape(d RuneDomain) *CharGenerator {
	return newCharGenerator(g.backend, d)
}

// Domain returns the active domain descriptor.
func (g *CharGenerator) Domain() RuneDomain { return g.domain }

// WithRange restricts draws to the inclusive code point range [min, max].
func (g *CharGenerator) WithRange(min, max rune) (*CharGenerator, error) {
	if min < 0 || max > unicode.MaxRune || min > max {
		return nil, fmt.Errorf("withRange: %w", configError("code point range %#x-%#x", min, max))
	}
	d, err := NewRuneDomain(fmt.Sprintf("U+%04X..U+%04X", min, max), span(min, max))
	if err != nil {
		return nil, fmt.Errorf("withRange: %w", err)
	}
	return g.reshape(d), nil
}

// InTable restricts draws to the code points of t, e.g. unicode.Greek.
func (g *CharGenerator) InTable(name string, t *unicode.RangeTable) (*CharGenerator, error) {
	d, err := NewRuneDomain(name, t)
	if err != nil {
		return nil, fmt.Errorf("inTable: %w", err)
	}
	return g.reshape(d), nil
}

// Alpha restricts draws to a-z and A-Z.
func (g *CharGenerator) Alpha() *CharGenerator { return g.reshape(alphaDomain) }

// Numeric restricts draws to 0-9.
func (g *CharGenerator) Numeric() *CharGenerator { return g.reshape(numericDomain) }

// AlphaNumeric restricts draws to a-z, A-Z and 0-9.
func (g *CharGenerator) AlphaNumeric() *CharGenerator { return g.reshape(alphaNumericDomain) }

// ASCII restricts draws to U+0000..U+007F.
func (g *CharGenerator) ASCII() *CharGenerator { return g.reshape(asciiDomain) }

// Uppercase restricts draws to A-Z.
func (g *CharGenerator) Uppercase() *CharGenerator { return g.reshape(upperDomain) }

// Lowercase restricts draws to a-z.
func (g *CharGenerator) Lowercase() *CharGenerator { return g.reshape(lowerDomain) }

// Hangul restricts draws to the Hangul syllables block.
func (g *CharGenerator) Hangul() *CharGenerator { return g.reshape(hangulDomain) }

// Emoji restricts draws to the pictograph and emoticon blocks.
func (g *CharGenerator) Emoji() *CharGenerator { return g.reshape(emojiDomain) }

// Whitespace restricts draws to unicode.White_Space.
func (g *CharGenerator) Whitespace() *CharGenerator { return g.reshape(whitespaceDomain) }

// Sample draws one code point from the backend.
func (g *CharGenerator) Sample() (rune, error) {
	r := g.backend.DrawRune(g.domain)
	if !g.domain.Contains(r) {
		return 0, fmt.Errorf("%w: %U not in %s", ErrBackendContract, r, g.domain.Name())
	}
	g.raw.store(r)
	return r, nil
}

// RawValue returns the last drawn code point, or nil before the first draw.
func (g *CharGenerator) RawValue() any { return g.raw.load() }

// Fixed reports whether the domain has a single member.
func (g *CharGenerator) Fixed() bool { return g.domain.Size() == 1 }
