// Package semantic computes a bounded similarity score between two
// documents by embedding their chunks and querying a nearest-chunk index.
package semantic

import (
	"fmt"
	"math"
	"sort"
)

// Neighbor is a single nearest-chunk query result. Distance is Euclidean
// over unit-normalized vectors, so it lies in [0, 2].
type Neighbor struct {
	Chunk    string
	Distance float64
}

// Index is an in-memory similarity index over a set of embedded chunks.
type Index struct {
	chunks  []string
	vectors [][]float64
}

// NewIndex builds an index over chunks and their embedding vectors. Vectors
// are unit-normalized on insertion so query distances are scale-invariant.
func NewIndex(chunks []string, vectors [][]float32) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	normalized := make([][]float64, len(vectors))
	for i, vec := range vectors {
		n, err := normalize(vec)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		normalized[i] = n
	}

	return &Index{chunks: chunks, vectors: normalized}, nil
}

// Query returns up to topK nearest chunks to the query vector, ordered by
// ascending distance.
func (ix *Index) Query(vec []float32, topK int) ([]Neighbor, error) {
	if topK <= 0 {
		return nil, nil
	}
	q, err := normalize(vec)
	if err != nil {
		return nil, err
	}

	neighbors := make([]Neighbor, 0, len(ix.chunks))
	for i, v := range ix.vectors {
		d, err := euclidean(q, v)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, Neighbor{Chunk: ix.chunks[i], Distance: d})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if len(neighbors) > topK {
		neighbors = neighbors[:topK]
	}
	return neighbors, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

func normalize(vec []float32) ([]float64, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("empty vector")
	}
	var sum float64
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
		sum += out[i] * out[i]
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, fmt.Errorf("zero vector")
	}
	for i := range out {
		out[i] /= norm
	}
	return out, nil
}

func euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
