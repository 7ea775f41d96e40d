package rank

import (
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sized struct {
	name string
	size int64
}

func bySize(s *sized) float64 { return float64(s.size) }

func TestMaxBy(t *testing.T) {
	identity := func(v int) float64 { return float64(v) }

	testCases := []struct {
		name     string
		items    []int
		expected int
	}{
		{name: "single", items: []int{7}, expected: 7},
		{name: "ascending", items: []int{1, 2, 3}, expected: 3},
		{name: "descending", items: []int{3, 2, 1}, expected: 3},
		{name: "negative", items: []int{-5, -2, -9}, expected: -2},
		{name: "max in middle", items: []int{4, 11, 6}, expected: 11},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MaxBySlice(tc.items, identity)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMaxBy_FirstMaximumWins(t *testing.T) {
	items := []*sized{
		{name: "a", size: 3},
		{name: "b", size: 9},
		{name: "c", size: 9},
		{name: "d", size: 1},
	}

	got, err := MaxBySlice(items, bySize)
	require.NoError(t, err)
	assert.Equal(t, "b", got.name)
}

func TestMaxBy_ResultIsMaximal(t *testing.T) {
	items := []int{12, 40, 3, 40, 17, -8, 0, 39}
	score := func(v int) float64 { return float64(v % 13) }

	got, err := MaxBySlice(items, score)
	require.NoError(t, err)

	for _, v := range items {
		assert.GreaterOrEqual(t, score(got), score(v))
	}

	first := slices.IndexFunc(items, func(v int) bool { return score(v) == score(got) })
	assert.Equal(t, items[first], got)
}

func TestMaxBy_Empty(t *testing.T) {
	_, err := MaxBySlice([]int{}, func(v int) float64 { return float64(v) })
	require.ErrorIs(t, err, ErrEmptyCollection)

	_, err = MaxBySlice[int](nil, func(v int) float64 { return float64(v) })
	require.ErrorIs(t, err, ErrEmptyCollection)
}

func TestMaxBy_SkipsNil(t *testing.T) {
	a := &sized{name: "a", size: 4}
	b := &sized{name: "b", size: 8}

	withNils, err := MaxBySlice([]*sized{nil, a, nil, b}, bySize)
	require.NoError(t, err)

	without, err := MaxBySlice([]*sized{a, b}, bySize)
	require.NoError(t, err)

	assert.Same(t, without, withNils)

	_, err = MaxBySlice([]*sized{nil, nil}, bySize)
	require.ErrorIs(t, err, ErrEmptyCollection)
}

func TestMaxBy_SkipsNilInterfaces(t *testing.T) {
	items := []any{nil, 2, nil, 5, 1}

	got, err := MaxBySlice(items, func(v any) float64 { return float64(v.(int)) })
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestMaxBy_NegativeInfinity(t *testing.T) {
	got, err := MaxBySlice([]float64{math.Inf(-1), math.Inf(-1)}, func(v float64) float64 { return v })
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))
}

func TestMaxBy_InvalidArguments(t *testing.T) {
	_, err := MaxBy[int](nil, func(v int) float64 { return float64(v) })
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = MaxBySlice([]int{1}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMaxBy_SinglePass(t *testing.T) {
	pulled := 0

	var seq iter.Seq[int] = func(yield func(int) bool) {
		for _, v := range []int{2, 8, 5} {
			pulled++
			if !yield(v) {
				return
			}
		}
	}

	got, err := MaxBy(seq, func(v int) float64 { return float64(v) })
	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Equal(t, 3, pulled)
}

func TestTopBy(t *testing.T) {
	items := []sized{
		{name: "a", size: 10},
		{name: "b", size: 70},
		{name: "c", size: 30},
		{name: "d", size: 60},
		{name: "e", size: 20},
		{name: "f", size: 50},
		{name: "g", size: 40},
	}

	top := TopBy(items, 5, func(s sized) float64 { return float64(s.size) })

	require.Len(t, top, 5)

	got := make([]string, 0, len(top))
	for _, s := range top {
		got = append(got, s.name)
	}

	assert.Equal(t, []string{"b", "d", "f", "g", "c"}, got)

	for i := 1; i < len(top); i++ {
		assert.Greater(t, top[i-1].size, top[i].size)
	}

	assert.Equal(t, "a", items[0].name, "input must not be reordered")
}

func TestTopBy_StableTies(t *testing.T) {
	items := []sized{{name: "x", size: 5}, {name: "y", size: 9}, {name: "z", size: 5}, {name: "w", size: 5}}

	top := TopBy(items, 3, func(s sized) float64 { return float64(s.size) })

	require.Len(t, top, 3)
	assert.Equal(t, "y", top[0].name)
	assert.Equal(t, "x", top[1].name)
	assert.Equal(t, "z", top[2].name)
}

func TestTopBy_Bounds(t *testing.T) {
	key := func(v int) float64 { return float64(v) }

	assert.Empty(t, TopBy([]int{1, 2}, 0, key))
	assert.Empty(t, TopBy([]int{}, 5, key))
	assert.Equal(t, []int{2, 1}, TopBy([]int{1, 2}, 5, key))
}
