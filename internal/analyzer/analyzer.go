// Package analyzer orchestrates a full resume-versus-job analysis: keyword
// extraction and semantic scoring in parallel, then match analysis through
// the parsing cascade, then bullet rewriting and feedback.
package analyzer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
	"github.com/jonathan/smartmatch-advisor/internal/bullets"
	"github.com/jonathan/smartmatch-advisor/internal/config"
	"github.com/jonathan/smartmatch-advisor/internal/keywords"
	"github.com/jonathan/smartmatch-advisor/internal/llm"
	"github.com/jonathan/smartmatch-advisor/internal/match"
	"github.com/jonathan/smartmatch-advisor/internal/prompts"
	"github.com/jonathan/smartmatch-advisor/internal/semantic"
	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// Analyzer runs the analysis pipeline. A nil completer or embedder puts
// the corresponding stage in degraded mode: heuristic keywords, rule-based
// scoring, no semantic signal, no bullet suggestions.
type Analyzer struct {
	cfg       *config.Config
	completer llm.Completer
	keywords  *keywords.Extractor
	semantic  *semantic.Scorer
	parser    *match.Parser
	rewriter  *bullets.Rewriter
	validate  *validator.Validate
	log       *zap.Logger
}

// New wires an Analyzer from its collaborators.
func New(cfg *config.Config, completer llm.Completer, embedder llm.Embedder, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Analyzer{
		cfg:       cfg,
		completer: completer,
		keywords:  keywords.NewExtractor(completer, cfg.MaxLLMKeywords, cfg.MaxHeuristicKeywords, cfg.HeuristicFallback, log),
		semantic:  semantic.NewScorer(embedder, cfg.ChunkSize, cfg.ChunkOverlap, log),
		parser:    match.NewParser(log),
		rewriter:  bullets.NewRewriter(completer, cfg.MaxBulletsForRewrite, cfg.MaxMissingForRewrite, cfg.BulletTextLimit, log),
		validate:  validate,
		log:       log,
	}
}

// Analyze runs the full pipeline over one request.
func (a *Analyzer) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	start := time.Now()

	req = req.Trim()
	if err := a.validateRequest(req); err != nil {
		return nil, err
	}

	resumeKW, jobKW, semanticScore, err := a.gather(ctx, req)
	if err != nil {
		return nil, categorize("gather", err)
	}

	outcome := a.scoreMatch(ctx, req, resumeKW, jobKW, semanticScore)
	result := outcome.Result

	suggestions := a.suggestBullets(ctx, req, result.MissingKeywords)

	a.log.Info("analysis complete",
		zap.String("tier", outcome.Tier.String()),
		zap.Float64("match_percentage", result.MatchPercentage),
		zap.Float64("semantic_score", result.SemanticScore),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("elapsed", time.Since(start)))

	return &types.AnalysisResult{
		MatchPercentage:     result.MatchPercentage,
		MatchedKeywords:     result.MatchedKeywords,
		MissingKeywords:     result.MissingKeywords,
		Suggestions:         suggestions,
		Strengths:           result.Strengths,
		AreasForImprovement: result.Improvements,
		OverallFeedback:     match.Feedback(result),
		SemanticScore:       result.SemanticScore,
		ProcessingTime:      time.Since(start).Seconds(),
	}, nil
}

// validateRequest enforces presence and minimum length on both documents.
func (a *Analyzer) validateRequest(req types.AnalysisRequest) error {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		message := "is required"
		if fe.Tag() == "min" {
			message = "must be at least " + fe.Param() + " characters"
		}
		return &apperrors.ValidationError{Field: fe.Field(), Message: message}
	}
	return &apperrors.ValidationError{Message: err.Error()}
}

// gather runs keyword extraction for both documents and semantic scoring
// concurrently. The semantic stage never fails; a keyword failure without
// heuristic fallback cancels its siblings.
func (a *Analyzer) gather(ctx context.Context, req types.AnalysisRequest) ([]string, []string, float64, error) {
	var (
		resumeKW      []string
		jobKW         []string
		semanticScore float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeKW, err = a.keywords.Extract(gctx, req.ResumeText, "resume")
		return err
	})
	g.Go(func() error {
		var err error
		jobKW, err = a.keywords.Extract(gctx, req.JobDescription, "job description")
		return err
	})
	g.Go(func() error {
		semanticScore = a.semantic.Score(gctx, req.ResumeText, req.JobDescription)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, 0, err
	}
	return resumeKW, jobKW, semanticScore, nil
}

// scoreMatch produces the match result. With a completion service
// available the response goes through the parsing cascade; without one, or
// when the call itself fails, the rule-based scorer runs against the full
// resume text so substring matches still count.
func (a *Analyzer) scoreMatch(ctx context.Context, req types.AnalysisRequest, resumeKW, jobKW []string, semanticScore float64) types.ParseOutcome {
	if a.completer == nil {
		return a.ruleBased(req, resumeKW, jobKW, semanticScore)
	}

	prompt := prompts.Format(prompts.MustGet(prompts.AnalysisFile, prompts.MatchAnalysis), map[string]string{
		"ResumeKeywords": strings.Join(resumeKW, ", "),
		"JobKeywords":    strings.Join(jobKW, ", "),
		"ResumeText":     truncateRunes(req.ResumeText, a.cfg.MatchTextLimit),
		"JobDescription": truncateRunes(req.JobDescription, a.cfg.MatchTextLimit),
	})

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		a.log.Warn("match analysis degraded to rule-based scoring", zap.Error(err))
		return a.ruleBased(req, resumeKW, jobKW, semanticScore)
	}

	return a.parser.Parse(raw, resumeKW, jobKW, semanticScore)
}

func (a *Analyzer) ruleBased(req types.AnalysisRequest, resumeKW, jobKW []string, semanticScore float64) types.ParseOutcome {
	result := match.KeywordOverlap(resumeKW, jobKW, req.ResumeText)
	return types.ParseOutcome{
		Tier:   types.TierRuleBased,
		Result: match.BoostTapered(result, semanticScore),
	}
}

// suggestBullets extracts resume bullets and, when there are missing
// keywords to weave in, asks for rewrites. Always returns a non-nil slice.
func (a *Analyzer) suggestBullets(ctx context.Context, req types.AnalysisRequest, missingKeywords []string) []types.BulletSuggestion {
	extracted := bullets.Extract(req.ResumeText, a.cfg.MaxBullets, a.cfg.MinBulletLength)
	if len(extracted) == 0 || len(missingKeywords) == 0 {
		return []types.BulletSuggestion{}
	}
	return a.rewriter.Rewrite(ctx, extracted, req.JobDescription, missingKeywords)
}

// categorize passes taxonomy errors through unchanged and wraps anything
// else, such as a cancelled context surfacing mid-pipeline, as an
// AnalysisError carrying the stage name.
func categorize(stage string, err error) error {
	var (
		ve  *apperrors.ValidationError
		dpe *apperrors.DataProcessingError
		ese *apperrors.ExternalServiceError
	)
	if errors.As(err, &ve) || errors.As(err, &dpe) || errors.As(err, &ese) {
		return err
	}
	return &apperrors.AnalysisError{Stage: stage, Cause: err}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
