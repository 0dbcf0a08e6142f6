package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngff-go/ngff/tree"
)

func TestItemSize(t *testing.T) {
	cases := []struct {
		dtype string
		want  int
	}{
		{"<f8", 8},
		{">f4", 4},
		{"=i4", 4},
		{"|u1", 1},
		{">c16", 16},
		{"|S7", 7},
		{"<U5", 20},
		{"|V3", 3},
		{"", 1},
		{"f", 1},
		{"<x8", 1},
		{"|S0", 1},
		{"<fx", 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tree.ItemSize(c.dtype), c.dtype)
	}
}

func TestGuessChunks_SmallArraysStayWhole(t *testing.T) {
	assert.Equal(t, []int{100, 100}, tree.GuessChunks([]int{100, 100}, 8))
	assert.Equal(t, []int{3, 64, 64}, tree.GuessChunks([]int{3, 64, 64}, 8))
}

func TestGuessChunks_LargeAxisIsHalved(t *testing.T) {
	// 8 MB along one axis halves down to ~500 KB per chunk
	assert.Equal(t, []int{62500}, tree.GuessChunks([]int{1000000}, 8))
}

func TestGuessChunks_DegenerateShapes(t *testing.T) {
	assert.Nil(t, tree.GuessChunks(nil, 8))
	assert.Equal(t, []int{1, 10}, tree.GuessChunks([]int{0, 10}, 8))
}

func TestGuessChunks_ZeroTypesize(t *testing.T) {
	assert.Equal(t, tree.GuessChunks([]int{100, 100}, 1), tree.GuessChunks([]int{100, 100}, 0))
}

func TestGuessChunks_RespectsTheUpperBound(t *testing.T) {
	chunks := tree.GuessChunks([]int{100000, 100000}, 8)
	require.Len(t, chunks, 2)

	bytes := 8
	for i, c := range chunks {
		assert.GreaterOrEqual(t, c, 1)
		assert.LessOrEqual(t, c, 100000, "axis %d", i)
		bytes *= c
	}
	assert.Less(t, bytes, 64*1024*1024)
}

func TestAutoChunks(t *testing.T) {
	desc := tree.ArrayDesc{Dims: []int{3, 64, 64}, DataType: "<f8"}
	assert.Equal(t, tree.GuessChunks([]int{3, 64, 64}, 8), tree.AutoChunks(desc))
}
