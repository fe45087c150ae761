package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbedding(t *testing.T) {
	vec := GenerateEmbedding("abc", "")
	assert.Equal(t, []float32{3, 1, 2}, vec.Slice())

	// Deterministic across calls.
	again := GenerateEmbedding("abc", "")
	assert.Equal(t, vec.Slice(), again.Slice())

	// Title and description both contribute.
	longer := GenerateEmbedding("abc", "def")
	assert.Equal(t, []float32{7, 2, 4}, longer.Slice())
}

func TestGenerateEmbeddingIgnoresCase(t *testing.T) {
	upper := GenerateEmbedding("PASTA", "")
	lower := GenerateEmbedding("pasta", "")
	assert.Equal(t, lower.Slice(), upper.Slice())
}
