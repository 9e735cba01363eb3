// Package types defines the data model shared across the analysis pipeline.
// Everything here is created fresh per analysis request; nothing is cached
// or persisted by the core.
package types

import "strings"

// AnalysisRequest is the inbound request shape. Both documents must be at
// least 50 characters after trimming; the analyzer re-checks this before
// doing any work.
type AnalysisRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=50"`
	JobDescription string `json:"job_description" validate:"required,min=50"`
}

// Trim returns a copy with both documents whitespace-trimmed.
func (r AnalysisRequest) Trim() AnalysisRequest {
	return AnalysisRequest{
		ResumeText:     strings.TrimSpace(r.ResumeText),
		JobDescription: strings.TrimSpace(r.JobDescription),
	}
}

// MatchResult is the canonical match-analysis shape. After normalization
// all four list fields are non-nil, MatchPercentage is in [0,100], and
// SemanticScore is in [0,1] (0 when no semantic signal was available).
type MatchResult struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	SemanticScore   float64  `json:"semantic_score,omitempty"`
}

// EmptyMatchResult returns a zero-valued result with all list fields
// initialized, never nil.
func EmptyMatchResult() MatchResult {
	return MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Strengths:       []string{},
		Improvements:    []string{},
	}
}

// BulletSuggestion is a proposed rewrite of a single resume bullet.
type BulletSuggestion struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// Valid reports whether all three fields are present and non-empty.
// Invalid suggestions are dropped, never defaulted.
func (b BulletSuggestion) Valid() bool {
	return strings.TrimSpace(b.Original) != "" &&
		strings.TrimSpace(b.Improved) != "" &&
		strings.TrimSpace(b.Reason) != ""
}

// AnalysisResult is the terminal artifact returned to the caller. It is
// immutable once constructed and has no further lifecycle.
type AnalysisResult struct {
	MatchPercentage     float64            `json:"match_percentage"`
	MatchedKeywords     []string           `json:"matched_keywords"`
	MissingKeywords     []string           `json:"missing_keywords"`
	Suggestions         []BulletSuggestion `json:"suggestions"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
	OverallFeedback     string             `json:"overall_feedback"`
	SemanticScore       float64            `json:"semantic_score,omitempty"`
	ProcessingTime      float64            `json:"processing_time,omitempty"`
}
