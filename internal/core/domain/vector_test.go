package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.5, 0.5, 0.5},
		{-3, 2, 7, 1},
	}

	for _, v := range vectors {
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.3, -0.2, 0.9, 0.1}
	b := []float32{-0.5, 0.4, 0.2, 0.7}

	assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
}

func TestCosineSimilarity_Range(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 0}, {0, 1}},
		{{1, 0}, {-1, 0}},
		{{2, 3}, {4, 6}},
		{{1, 2, 3}, {-1, -2, -3}},
	}

	for _, pair := range pairs {
		sim := CosineSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, sim, -1.0-1e-9)
		assert.LessOrEqual(t, sim, 1.0+1e-9)
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 2}, []float32{-1, -2}), 1e-9)
}

func TestCosineSimilarity_DimensionMismatchIsZero(t *testing.T) {
	// Embeddings from different models are not comparable.
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2}))
}

func TestCosineSimilarity_ZeroNormIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestCosineSimilarity_KnownValue(t *testing.T) {
	// 45 degrees between (1,0) and (1,1).
	sim := CosineSimilarity([]float32{1, 0}, []float32{1, 1})
	assert.InDelta(t, 1/math.Sqrt2, sim, 1e-9)
}
