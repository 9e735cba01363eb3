package bullets

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/llm"
	"github.com/jonathan/smartmatch-advisor/internal/prompts"
	"github.com/jonathan/smartmatch-advisor/internal/types"
	"github.com/jonathan/smartmatch-advisor/schemas"
)

// Rewriter proposes improved versions of resume bullets. It is an
// enhancement stage: every failure mode yields an empty suggestion list
// rather than an error, so a rewrite problem never sinks an analysis.
type Rewriter struct {
	completer    llm.Completer
	schema       *gojsonschema.Schema
	maxBullets   int
	maxMissing   int
	jobTextLimit int
	log          *zap.Logger
}

// NewRewriter builds a Rewriter. The limits bound how much material is
// packed into a single prompt.
func NewRewriter(completer llm.Completer, maxBullets, maxMissing, jobTextLimit int, log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemas.BulletSuggestions))
	if err != nil {
		panic("embedded bullet suggestions schema is invalid: " + err.Error())
	}
	return &Rewriter{
		completer:    completer,
		schema:       schema,
		maxBullets:   maxBullets,
		maxMissing:   maxMissing,
		jobTextLimit: jobTextLimit,
		log:          log,
	}
}

// Rewrite asks the completion service to improve the given bullets,
// weaving in the missing keywords. Suggestions that come back without all
// three fields are dropped.
func (r *Rewriter) Rewrite(ctx context.Context, bullets []string, jobDescription string, missingKeywords []string) []types.BulletSuggestion {
	if r.completer == nil || len(bullets) == 0 {
		return []types.BulletSuggestion{}
	}

	if len(bullets) > r.maxBullets {
		bullets = bullets[:r.maxBullets]
	}
	if len(missingKeywords) > r.maxMissing {
		missingKeywords = missingKeywords[:r.maxMissing]
	}

	prompt := prompts.Format(prompts.MustGet(prompts.AnalysisFile, prompts.BulletImprovement), map[string]string{
		"JobDescription":  truncateRunes(jobDescription, r.jobTextLimit),
		"MissingKeywords": strings.Join(missingKeywords, ", "),
		"BulletPoints":    strings.Join(bullets, "\n"),
	})

	raw, err := r.completer.CompleteJSON(ctx, prompt)
	if err != nil {
		r.log.Warn("bullet rewrite failed", zap.Error(err))
		return []types.BulletSuggestion{}
	}

	return r.parseSuggestions(raw)
}

func (r *Rewriter) parseSuggestions(raw string) []types.BulletSuggestion {
	cleaned := llm.CleanJSONBlock(raw)

	check, err := r.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil || !check.Valid() {
		r.log.Warn("bullet rewrite response is not a suggestion list")
		return []types.BulletSuggestion{}
	}

	var parsed []types.BulletSuggestion
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		r.log.Warn("bullet rewrite response failed to decode", zap.Error(err))
		return []types.BulletSuggestion{}
	}

	suggestions := make([]types.BulletSuggestion, 0, len(parsed))
	for _, s := range parsed {
		if s.Valid() {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
