package arbitrary

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringGenerator_DefaultLength(t *testing.T) {
	t.Parallel()

	for _, s := range sampleN[string](t, Strings(NewSeededBackend(30)), 500) {
		require.True(t, utf8.ValidString(s))
		require.LessOrEqual(t, utf8.RuneCountInString(s), DefaultMaxLength)
	}
}

func TestStringGenerator_WithLength(t *testing.T) {
	t.Parallel()

	g, err := Strings(NewSeededBackend(31)).WithLength(3, 5)
	require.NoError(t, err)
	for _, s := range sampleN[string](t, g.Numeric(), 500) {
		n := utf8.RuneCountInString(s)
		require.True(t, n >= 3 && n <= 5, "length %d", n)
	}

	_, err = Strings(nil).WithLength(-1, 3)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = Strings(nil).WithLength(4, 3)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestStringGenerator_Presets(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(32)
	tests := []struct {
		name  string
		gen   *StringGenerator
		check func(rune) bool
	}{
		{name: "numeric", gen: Strings(b).Numeric(), check: unicode.IsDigit},
		{name: "alphabetic", gen: Strings(b).Alphabetic(), check: func(r rune) bool { return r < 128 && unicode.IsLetter(r) }},
		{name: "alphaNumeric", gen: Strings(b).AlphaNumeric(), check: func(r rune) bool { return r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) }},
		{name: "ascii", gen: Strings(b).ASCII(), check: func(r rune) bool { return r <= unicode.MaxASCII }},
		{name: "hangul", gen: Strings(b).Hangul(), check: func(r rune) bool { return unicode.Is(unicode.Hangul, r) }},
		{name: "last preset wins", gen: Strings(b).Hangul().Numeric(), check: unicode.IsDigit},
		{
			name:  "preset discards character filter",
			gen:   Strings(b).FilterCharacter(func(r rune) bool { return r == '0' }).Numeric(),
			check: unicode.IsDigit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range sampleN[string](t, tt.gen, 300) {
				for _, r := range s {
					require.Truef(t, tt.check(r), "unexpected %U in %q", r, s)
				}
			}
		})
	}

	// The discarded filter allowed only '0'; with it gone other digits appear.
	sawOther := false
	for _, s := range sampleN[string](t, tests[len(tests)-1].gen, 300) {
		for _, r := range s {
			if r != '0' {
				sawOther = true
			}
		}
	}
	assert.True(t, sawOther)
}

func TestStringGenerator_FilterCharacter(t *testing.T) {
	t.Parallel()

	g := Strings(NewSeededBackend(33)).
		FilterCharacter(unicode.IsLetter).
		FilterCharacter(func(r rune) bool { return r < 128 })
	for _, s := range sampleN[string](t, g, 300) {
		for _, r := range s {
			require.True(t, r < 128 && unicode.IsLetter(r), "unexpected %U", r)
		}
	}
}

func TestStringGenerator_FilterCharacterFixedMiss(t *testing.T) {
	t.Parallel()

	x, err := Characters(nil).WithRange('x', 'x')
	require.NoError(t, err)
	g, err := Strings(nil).WithLength(2, 2)
	require.NoError(t, err)

	_, err = g.WithCharacters(x).FilterCharacter(func(r rune) bool { return r == 'y' }).Sample()
	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "filterCharacter", cerr.Op)
	assert.ErrorIs(t, err, ErrFixedValueFilterMiss)
}

func TestStringGenerator_Fixed(t *testing.T) {
	t.Parallel()

	x, err := Characters(nil).WithRange('x', 'x')
	require.NoError(t, err)

	empty, err := Strings(nil).WithLength(0, 0)
	require.NoError(t, err)
	assert.True(t, empty.Fixed())

	three, err := Strings(nil).WithLength(3, 3)
	require.NoError(t, err)
	assert.False(t, three.Fixed())
	assert.True(t, three.WithCharacters(x).Fixed())

	s, err := three.WithCharacters(x).Sample()
	require.NoError(t, err)
	assert.Equal(t, "xxx", s)

	assert.True(t, Strings(nil).WithLengths(Just(0)).Fixed())
	assert.False(t, Strings(nil).Fixed())
}

func TestStringGenerator_NegativeLength(t *testing.T) {
	t.Parallel()

	g := Strings(nil).WithLengths(Just(-1))
	_, err := g.Sample()
	assert.ErrorIs(t, err, ErrBackendContract)
}
