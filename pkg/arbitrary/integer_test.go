package arbitrary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleN[T any](t *testing.T, g Generator[T], n int) []T {
	t.Helper()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.Sample()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestIntGenerator_WithRange(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(10)

	t.Run("int8", func(t *testing.T) {
		g, err := Int8s(b).WithRange(-20, 35)
		require.NoError(t, err)
		for _, v := range sampleN[int8](t, g, 1000) {
			require.GreaterOrEqual(t, v, int8(-20))
			require.LessOrEqual(t, v, int8(35))
		}
	})

	t.Run("int16", func(t *testing.T) {
		g, err := Int16s(b).WithRange(1000, 1010)
		require.NoError(t, err)
		for _, v := range sampleN[int16](t, g, 1000) {
			require.GreaterOrEqual(t, v, int16(1000))
			require.LessOrEqual(t, v, int16(1010))
		}
	})

	t.Run("int64", func(t *testing.T) {
		g, err := Int64s(b).WithRange(math.MaxInt64-5, math.MaxInt64)
		require.NoError(t, err)
		for _, v := range sampleN[int64](t, g, 1000) {
			require.GreaterOrEqual(t, v, int64(math.MaxInt64-5))
		}
	})

	t.Run("min above max is rejected eagerly", func(t *testing.T) {
		g, err := Int16s(b).WithRange(10, -10)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.Nil(t, g)
	})
}

func TestIntGenerator_LastShapeWins(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(11)

	g, err := Int8s(b).Positive().WithRange(-50, -10)
	require.NoError(t, err)
	for _, v := range sampleN[int8](t, g, 1000) {
		require.GreaterOrEqual(t, v, int8(-50))
		require.LessOrEqual(t, v, int8(-10))
	}

	ranged, err := Int64s(b).WithRange(0, 10)
	require.NoError(t, err)
	neg := ranged.Negative()
	assert.Equal(t, IntDomain{Min: math.MinInt64, Max: -1}, neg.Domain())
	assert.Equal(t, IntDomain{Min: 0, Max: 10}, ranged.Domain(), "receiver must be untouched")
}

func TestIntGenerator_ParityOverride(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(12)
	tests := []struct {
		name string
		gen  *IntGenerator[int16]
		want int16
	}{
		{name: "even then odd", gen: Int16s(b).Even().Odd(), want: 1},
		{name: "odd then even", gen: Int16s(b).Odd().Even(), want: 0},
		{name: "positive then even", gen: Int16s(b).Positive().Even(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range sampleN[int16](t, tt.gen, 1000) {
				require.Equal(t, tt.want, v&1, "value %d", v)
			}
		})
	}

	// Even() spans the full width, so negatives must show up.
	sawNegative := false
	for _, v := range sampleN[int16](t, Int16s(b).Positive().Even(), 1000) {
		if v < 0 {
			sawNegative = true
			break
		}
	}
	assert.True(t, sawNegative)
}

func TestIntGenerator_Shapes(t *testing.T) {
	t.Parallel()

	b := NewSeededBackend(13)
	tests := []struct {
		name string
		got  IntDomain
		want IntDomain
	}{
		{name: "int8 positive", got: Int8s(b).Positive().Domain(), want: IntDomain{Min: 1, Max: 127}},
		{name: "int8 negative", got: Int8s(b).Negative().Domain(), want: IntDomain{Min: -128, Max: -1}},
		{name: "int8 ascii", got: Int8s(b).ASCII().Domain(), want: IntDomain{Min: 0, Max: 127}},
		{name: "int16 gte", got: Int16s(b).GreaterOrEqual(100).Domain(), want: IntDomain{Min: 100, Max: math.MaxInt16}},
		{name: "int16 lte", got: Int16s(b).LessOrEqual(-100).Domain(), want: IntDomain{Min: math.MinInt16, Max: -100}},
		{name: "int32 full", got: Int32s(b).Domain(), want: IntDomain{Min: math.MinInt32, Max: math.MaxInt32}},
		{name: "int64 odd", got: Int64s(b).Odd().Domain(), want: IntDomain{Min: math.MinInt64, Max: math.MaxInt64, Parity: OddParity}},
		{name: "int full", got: Ints(b).Domain(), want: IntDomain{Min: math.MinInt, Max: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestIntGenerator_Fixed(t *testing.T) {
	t.Parallel()

	single, err := Int8s(nil).WithRange(42, 42)
	require.NoError(t, err)
	assert.True(t, single.Fixed())
	assert.True(t, Int8s(nil).GreaterOrEqual(math.MaxInt8).Fixed())
	assert.False(t, Int8s(nil).Fixed())
	assert.False(t, Int64s(nil).Fixed())
}

func TestIntGenerator_RawValue(t *testing.T) {
	t.Parallel()

	g := Int16s(&scriptedBackend{ints: []int64{7, 9}})
	assert.Nil(t, g.RawValue())

	v, err := g.Sample()
	require.NoError(t, err)
	assert.Equal(t, int16(7), v)
	assert.Equal(t, int16(7), g.RawValue())
	assert.Equal(t, int16(7), g.RawValue(), "RawValue must not draw")
}

func TestIntGenerator_BackendContract(t *testing.T) {
	t.Parallel()

	g, err := Int8s(&scriptedBackend{ints: []int64{500}}).WithRange(0, 10)
	require.NoError(t, err)

	_, err = g.Sample()
	require.ErrorIs(t, err, ErrBackendContract)
	assert.Nil(t, g.RawValue())
}
