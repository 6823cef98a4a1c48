package arbitrary

import (
	"math"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/rangetable"
)

func TestIntDomain_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		domain  IntDomain
		wantErr bool
	}{
		{name: "single value", domain: IntDomain{Min: 5, Max: 5}},
		{name: "full int64", domain: IntDomain{Min: math.MinInt64, Max: math.MaxInt64}},
		{name: "min above max", domain: IntDomain{Min: 2, Max: 1}, wantErr: true},
		{name: "no even value", domain: IntDomain{Min: 3, Max: 3, Parity: EvenParity}, wantErr: true},
		{name: "no odd value", domain: IntDomain{Min: 4, Max: 4, Parity: OddParity}, wantErr: true},
		{name: "odd at max int64", domain: IntDomain{Min: math.MaxInt64, Max: math.MaxInt64, Parity: OddParity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.domain.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIntDomain_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		domain   IntDomain
		wantN    uint64
		wantFull bool
	}{
		{name: "int8", domain: IntDomain{Min: -128, Max: 127}, wantN: 256},
		{name: "int8 even", domain: IntDomain{Min: -128, Max: 127, Parity: EvenParity}, wantN: 128},
		{name: "odd in [1,1]", domain: IntDomain{Min: 1, Max: 1, Parity: OddParity}, wantN: 1},
		{name: "empty parity", domain: IntDomain{Min: 2, Max: 2, Parity: OddParity}, wantN: 0},
		{name: "full int64", domain: IntDomain{Min: math.MinInt64, Max: math.MaxInt64}, wantFull: true},
		{name: "int64 odd", domain: IntDomain{Min: math.MinInt64, Max: math.MaxInt64, Parity: OddParity}, wantN: 1 << 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, full := tt.domain.Size()
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantFull, full)
		})
	}
}

func TestIntDomain_At(t *testing.T) {
	t.Parallel()

	d := IntDomain{Min: -5, Max: 5, Parity: OddParity}
	n, _ := d.Size()
	got := make([]int64, 0, n)
	for i := uint64(0); i < n; i++ {
		got = append(got, d.At(i))
	}
	assert.Equal(t, []int64{-5, -3, -1, 1, 3, 5}, got)
}

func TestNewRuneDomain(t *testing.T) {
	t.Parallel()

	t.Run("nil table", func(t *testing.T) {
		_, err := NewRuneDomain("nil", nil)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := NewRuneDomain("empty", &unicode.RangeTable{})
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("zero stride", func(t *testing.T) {
		_, err := NewRuneDomain("bad", &unicode.RangeTable{R16: []unicode.Range16{{Lo: 1, Hi: 2}}})
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("set built with rangetable.New", func(t *testing.T) {
		d, err := NewRuneDomain("vowels", rangetable.New('a', 'e', 'i', 'o', 'u'))
		require.NoError(t, err)
		assert.EqualValues(t, 5, d.Size())
		assert.Equal(t, []rune("aeiou"), d.ASCII())
		assert.True(t, d.Contains('o'))
		assert.False(t, d.Contains('b'))
	})
}

func TestRuneDomain_AtCoversTable(t *testing.T) {
	t.Parallel()

	for name, d := range Domains() {
		if d.Size() > 200_000 {
			continue
		}
		t.Run(name, func(t *testing.T) {
			var want []rune
			rangetable.Visit(d.Table(), func(r rune) { want = append(want, r) })
			require.EqualValues(t, len(want), d.Size())
			for i, r := range want {
				require.Equal(t, r, d.At(uint64(i)))
			}
		})
	}
}

func TestBuiltinDomains(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 0x10FFFF+1-0x800, anyDomain.Size())
	assert.False(t, anyDomain.Contains(0xD800))
	assert.EqualValues(t, 128, asciiDomain.Size())
	assert.EqualValues(t, 10, numericDomain.Size())
	assert.EqualValues(t, 52, alphaDomain.Size())
	assert.EqualValues(t, 62, alphaNumericDomain.Size())
	assert.EqualValues(t, HangulLast-HangulFirst+1, hangulDomain.Size())
	assert.True(t, hangulDomain.Contains('가'))
	assert.True(t, hangulDomain.Contains('힣'))
	assert.Empty(t, hangulDomain.ASCII())
	assert.EqualValues(t, 0x300+0x50+0x80+0x100, emojiDomain.Size())
	assert.True(t, emojiDomain.Contains('😀'))
	assert.True(t, whitespaceDomain.Contains(' '))
	assert.True(t, whitespaceDomain.Contains('　'))
}
