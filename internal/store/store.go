// Package store persists analysis run history in PostgreSQL. Only derived
// numbers are stored; the resume and job description themselves are never
// written anywhere.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// ErrNotFound is returned when a run ID has no record.
var ErrNotFound = errors.New("analysis run not found")

// Run is one persisted analysis outcome.
type Run struct {
	ID              uuid.UUID `json:"id"`
	MatchPercentage float64   `json:"match_percentage"`
	SemanticScore   float64   `json:"semantic_score"`
	MatchedCount    int       `json:"matched_count"`
	MissingCount    int       `json:"missing_count"`
	SuggestionCount int       `json:"suggestion_count"`
	ProcessingTime  float64   `json:"processing_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Init creates the run-history table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id UUID PRIMARY KEY,
			match_percentage DOUBLE PRECISION NOT NULL,
			semantic_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			matched_count INT NOT NULL,
			missing_count INT NOT NULL,
			suggestion_count INT NOT NULL,
			processing_time DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create analysis_runs table: %w", err)
	}
	return nil
}

// SaveRun records the derived numbers of one analysis and returns the new
// run ID.
func (s *Store) SaveRun(ctx context.Context, result *types.AnalysisResult) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analysis_runs
		 (id, match_percentage, semantic_score, matched_count, missing_count, suggestion_count, processing_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, result.MatchPercentage, result.SemanticScore,
		len(result.MatchedKeywords), len(result.MissingKeywords),
		len(result.Suggestions), result.ProcessingTime,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// GetRun retrieves one run by ID.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, match_percentage, semantic_score, matched_count, missing_count,
		        suggestion_count, processing_time, created_at
		 FROM analysis_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.MatchPercentage, &run.SemanticScore, &run.MatchedCount,
		&run.MissingCount, &run.SuggestionCount, &run.ProcessingTime, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, match_percentage, semantic_score, matched_count, missing_count,
		        suggestion_count, processing_time, created_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.MatchPercentage, &run.SemanticScore, &run.MatchedCount,
			&run.MissingCount, &run.SuggestionCount, &run.ProcessingTime, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
