package semantic

import (
	"context"
	"errors"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder produces deterministic vectors so identical texts embed
// identically and different texts differ.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		h := fnv.New32a()
		_, _ = h.Write([]byte(text))
		seed := h.Sum32()
		vec := make([]float32, 8)
		for j := range vec {
			seed = seed*1664525 + 1013904223
			vec[j] = float32(seed%1000)/1000 + 0.001
		}
		vectors[i] = vec
	}
	return vectors, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("embedding service down")
}

func TestScore_IdenticalDocumentsScoreOne(t *testing.T) {
	s := NewScorer(hashEmbedder{}, 100, 20, nil)
	text := "Senior backend engineer with Go, Kubernetes and PostgreSQL experience."

	score := s.Score(context.Background(), text, text)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScore_BoundedZeroToOne(t *testing.T) {
	s := NewScorer(hashEmbedder{}, 50, 10, nil)

	score := s.Score(context.Background(),
		"Go developer building distributed systems and cloud infrastructure for years.",
		"Looking for a pastry chef with croissant lamination expertise and patience.")

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScore_EmbedderFailureReturnsZero(t *testing.T) {
	s := NewScorer(failingEmbedder{}, 100, 20, nil)

	score := s.Score(context.Background(), "resume text here", "job text here")
	assert.Equal(t, 0.0, score)
}

func TestScore_NilEmbedderReturnsZero(t *testing.T) {
	s := NewScorer(nil, 100, 20, nil)
	assert.Equal(t, 0.0, s.Score(context.Background(), "resume", "job"))
}

func TestScore_EmptyDocumentReturnsZero(t *testing.T) {
	s := NewScorer(hashEmbedder{}, 100, 20, nil)

	assert.Equal(t, 0.0, s.Score(context.Background(), "", "job text"))
	assert.Equal(t, 0.0, s.Score(context.Background(), "resume text", ""))
}

func TestIndex_QueryOrdersByDistance(t *testing.T) {
	chunks := []string{"a", "b", "c"}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	ix, err := NewIndex(chunks, vectors)
	require.NoError(t, err)

	neighbors, err := ix.Query([]float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, neighbors, 3)

	assert.Equal(t, "a", neighbors[0].Chunk)
	assert.Equal(t, "c", neighbors[1].Chunk)
	assert.Equal(t, "b", neighbors[2].Chunk)
	assert.InDelta(t, 0.0, neighbors[0].Distance, 1e-9)
}

func TestIndex_QueryTopKTruncation(t *testing.T) {
	ix, err := NewIndex([]string{"a", "b", "c", "d"}, [][]float32{
		{1, 0}, {0, 1}, {1, 1}, {0.5, 0.5},
	})
	require.NoError(t, err)

	neighbors, err := ix.Query([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, neighbors, 2)
}

func TestNewIndex_Errors(t *testing.T) {
	_, err := NewIndex(nil, nil)
	assert.Error(t, err)

	_, err = NewIndex([]string{"a"}, [][]float32{})
	assert.Error(t, err)

	_, err = NewIndex([]string{"a"}, [][]float32{{0, 0, 0}})
	assert.Error(t, err, "zero vector is rejected")
}
