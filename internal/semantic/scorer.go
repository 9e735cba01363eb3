package semantic

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/chunk"
	"github.com/jonathan/smartmatch-advisor/internal/llm"
)

// topNeighbors is how many resume chunks are retrieved per job chunk; only
// the single best (lowest distance) contributes to the score.
const topNeighbors = 3

// Scorer computes semantic similarity between a resume and a job
// description. Absence of semantic signal is a valid outcome: every failure
// path returns 0.0 without raising.
type Scorer struct {
	embedder     llm.Embedder
	chunkSize    int
	chunkOverlap int
	log          *zap.Logger
}

// NewScorer builds a Scorer. A nil embedder produces constant 0.0 scores.
func NewScorer(embedder llm.Embedder, chunkSize, chunkOverlap int, log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{
		embedder:     embedder,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		log:          log,
	}
}

// Score returns a similarity score in [0,1]. Each job-description chunk is
// matched against its nearest resume chunks; the per-chunk distances are
// mapped via max(0, 1 - distance/2) and averaged.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) float64 {
	if s.embedder == nil {
		return 0.0
	}

	resumeChunks := chunk.Split(resumeText, s.chunkSize, s.chunkOverlap)
	jobChunks := chunk.Split(jobText, s.chunkSize, s.chunkOverlap)
	if len(resumeChunks) == 0 || len(jobChunks) == 0 {
		return 0.0
	}

	resumeVectors, err := s.embedder.Embed(ctx, resumeChunks)
	if err != nil {
		s.log.Warn("semantic scoring skipped: resume embedding failed", zap.Error(err))
		return 0.0
	}

	jobVectors, err := s.embedder.Embed(ctx, jobChunks)
	if err != nil {
		s.log.Warn("semantic scoring skipped: job embedding failed", zap.Error(err))
		return 0.0
	}

	index, err := NewIndex(resumeChunks, resumeVectors)
	if err != nil {
		s.log.Warn("semantic scoring skipped: indexing failed", zap.Error(err))
		return 0.0
	}

	var sum float64
	var count int
	for _, jobVec := range jobVectors {
		neighbors, err := index.Query(jobVec, topNeighbors)
		if err != nil || len(neighbors) == 0 {
			continue
		}
		best := neighbors[0].Distance
		sum += math.Max(0, 1-best/2)
		count++
	}

	if count == 0 {
		return 0.0
	}

	score := sum / float64(count)
	s.log.Info("semantic similarity computed",
		zap.Float64("score", score),
		zap.Int("resume_chunks", len(resumeChunks)),
		zap.Int("job_chunks", len(jobChunks)))
	return score
}
