package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
	"github.com/jonathan/smartmatch-advisor/internal/config"
	"github.com/jonathan/smartmatch-advisor/internal/types"
)

var (
	testResume = "Python AWS Docker\nPython AWS Docker\nPython AWS Docker"
	testJob    = "Python AWS Kubernetes\nPython AWS Kubernetes\nPython AWS Kubernetes"
)

// scriptedCompleter answers each pipeline stage by recognizing its prompt.
type scriptedCompleter struct {
	keywordResponse func(prompt string) string
	matchResponse   string
	bulletResponse  string
	matchErr        error
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Extract the most important keywords") {
		return s.keywordResponse(prompt), nil
	}
	return s.matchResponse, s.matchErr
}

func (s *scriptedCompleter) CompleteJSON(_ context.Context, _ string) (string, error) {
	return s.bulletResponse, nil
}

func keywordsByDocument(prompt string) string {
	if strings.Contains(prompt, "job description:") {
		return "Python, AWS, Kubernetes"
	}
	return "Python, AWS, Docker"
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = f.vector
	}
	return out, nil
}

func TestAnalyze_FullyDegraded(t *testing.T) {
	a := New(config.Default(), nil, nil, nil)

	result, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
	})
	require.NoError(t, err)

	assert.Equal(t, 67.0, result.MatchPercentage)
	assert.Equal(t, []string{"Python", "AWS"}, result.MatchedKeywords)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingKeywords)
	assert.Zero(t, result.SemanticScore)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
	assert.True(t, strings.HasPrefix(result.OverallFeedback, "Good match"))
	assert.Contains(t, result.OverallFeedback, "Consider adding: Kubernetes.")
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestAnalyze_ValidationShortResume(t *testing.T) {
	a := New(config.Default(), nil, nil, nil)

	_, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     "too short",
		JobDescription: testJob,
	})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "resume_text", ve.Field)
	assert.Contains(t, ve.Message, "50")
}

func TestAnalyze_ValidationMissingJob(t *testing.T) {
	a := New(config.Default(), nil, nil, nil)

	_, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     testResume,
		JobDescription: "   ",
	})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "job_description", ve.Field)
}

func TestAnalyze_StructuredResponse(t *testing.T) {
	completer := &scriptedCompleter{
		keywordResponse: keywordsByDocument,
		matchResponse:   `{"match_percentage": 85, "matched_keywords": ["Python", "AWS"], "missing_keywords": ["Kubernetes"], "strengths": ["Cloud depth"], "improvements": ["Add container orchestration"]}`,
		bulletResponse:  `[]`,
	}
	a := New(config.Default(), completer, nil, nil)

	result, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
	})
	require.NoError(t, err)

	assert.Equal(t, 85.0, result.MatchPercentage)
	assert.Equal(t, []string{"Cloud depth"}, result.Strengths)
	assert.Equal(t, []string{"Add container orchestration"}, result.AreasForImprovement)
	assert.True(t, strings.HasPrefix(result.OverallFeedback, "Excellent match!"))
}

func TestAnalyze_MatchCallFailureFallsBackToRules(t *testing.T) {
	completer := &scriptedCompleter{
		keywordResponse: keywordsByDocument,
		matchErr:        errors.New("service unavailable"),
		bulletResponse:  `[]`,
	}
	a := New(config.Default(), completer, nil, nil)

	result, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
	})
	require.NoError(t, err)

	assert.Equal(t, 67.0, result.MatchPercentage)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingKeywords)
}

func TestAnalyze_SemanticSignalFlowsThrough(t *testing.T) {
	a := New(config.Default(), nil, &fakeEmbedder{vector: []float32{1, 2, 3}}, nil)

	result, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.SemanticScore, 0.001)
	assert.Greater(t, result.MatchPercentage, 67.0)
	assert.Contains(t, result.Strengths, "Strong semantic alignment (100%) between resume and role")
}

func TestAnalyze_BulletSuggestions(t *testing.T) {
	resume := `Summary of a senior engineer with cloud experience.
- Built Python services handling millions of requests
- Operated AWS infrastructure across three regions`
	job := "Looking for Python, AWS and Kubernetes experience in a senior engineer."

	completer := &scriptedCompleter{
		keywordResponse: keywordsByDocument,
		matchResponse:   `{"match_percentage": 70, "missing_keywords": ["Kubernetes"]}`,
		bulletResponse:  `[{"original": "Built Python services handling millions of requests", "improved": "Built Python services on Kubernetes handling millions of requests", "reason": "Adds the Kubernetes keyword"}]`,
	}
	a := New(config.Default(), completer, nil, nil)

	result, err := a.Analyze(context.Background(), types.AnalysisRequest{
		ResumeText:     resume,
		JobDescription: job,
	})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Contains(t, result.Suggestions[0].Improved, "Kubernetes")
}

func TestCategorize_WrapsUnexpectedErrors(t *testing.T) {
	err := categorize("gather", errors.New("connection reset"))

	var ae *apperrors.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "gather", ae.Stage)
	assert.EqualError(t, ae.Cause, "connection reset")
}

func TestCategorize_PreservesTaxonomyErrors(t *testing.T) {
	dpe := &apperrors.DataProcessingError{DataType: "resume", Step: "keyword_extraction"}

	err := categorize("gather", dpe)

	var ae *apperrors.AnalysisError
	assert.False(t, errors.As(err, &ae))
	assert.Same(t, dpe, err)
}
