// Package keywords turns free text into a bounded, ordered list of salient
// terms. The primary path asks the text-completion collaborator for a
// comma-separated list; the fallback path is a local stopword/frequency
// heuristic. Ordering is extraction order, never alphabetical, and
// deduplication is case-insensitive keeping the first occurrence.
package keywords

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
	"github.com/jonathan/smartmatch-advisor/internal/llm"
	"github.com/jonathan/smartmatch-advisor/internal/prompts"
)

// tokenPattern matches skill-like tokens: a word that may carry version or
// technology punctuation (C++, C#, Node.js, CI/CD halves, scikit-learn).
var tokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#.\-]*`)

const minTokenLength = 3

// Extractor extracts keywords from a document. A nil Completer means the
// heuristic path is used directly.
type Extractor struct {
	completer    llm.Completer
	maxLLM       int
	maxHeuristic int
	fallback     bool
	log          *zap.Logger
}

// NewExtractor builds an Extractor. fallback controls whether a completion
// failure degrades silently to the heuristic path or is fatal.
func NewExtractor(completer llm.Completer, maxLLM, maxHeuristic int, fallback bool, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		completer:    completer,
		maxLLM:       maxLLM,
		maxHeuristic: maxHeuristic,
		fallback:     fallback,
		log:          log,
	}
}

// Extract returns up to maxLLM keywords for text. contextLabel names the
// source document ("resume" or "job description") and is carried into both
// the prompt and any failure.
func (e *Extractor) Extract(ctx context.Context, text, contextLabel string) ([]string, error) {
	if e.completer == nil {
		return e.Heuristic(text), nil
	}

	prompt := prompts.Format(prompts.MustGet(prompts.AnalysisFile, prompts.KeywordExtraction), map[string]string{
		"Text":    text,
		"Context": contextLabel,
	})

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		if e.fallback {
			e.log.Warn("keyword extraction degraded to heuristic",
				zap.String("context", contextLabel),
				zap.Error(err))
			return e.Heuristic(text), nil
		}
		return nil, &apperrors.DataProcessingError{
			DataType: contextLabel,
			Step:     "keyword_extraction",
			Cause:    err,
		}
	}

	keywords := splitCommaList(raw)
	keywords = dedupe(keywords)
	if len(keywords) > e.maxLLM {
		keywords = keywords[:e.maxLLM]
	}
	return keywords, nil
}

// Heuristic extracts keywords locally: word-boundary tokens, minus
// stopwords, pure-numeric tokens, and tokens shorter than three characters,
// deduplicated case-insensitively in first-seen order, capped at
// maxHeuristic.
func (e *Extractor) Heuristic(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)
	keywords := make([]string, 0, len(tokens))

	for _, token := range tokens {
		// Sentence punctuation rides along on the final token; strip it so
		// "systems." compares equal to "systems". Interior dots (Node.js)
		// and trailing +/# (C++, C#) are kept.
		token = strings.TrimRight(token, ".-")
		lower := strings.ToLower(token)
		if len(token) < minTokenLength || isStopword(lower) || isNumeric(token) {
			continue
		}
		keywords = append(keywords, token)
	}

	keywords = dedupe(keywords)
	if len(keywords) > e.maxHeuristic {
		keywords = keywords[:e.maxHeuristic]
	}
	return keywords
}

// splitCommaList splits a comma-separated completion response, trimming
// items and dropping empties.
func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// dedupe removes case-insensitive duplicates preserving first-seen order.
func dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	unique := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		unique = append(unique, kw)
	}
	return unique
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(token) > 0
}
