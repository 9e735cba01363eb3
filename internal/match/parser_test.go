package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

func TestParse_StructuredTier(t *testing.T) {
	parser := NewParser(nil)
	raw := `{"match_percentage": 85, "matched_keywords": ["Python", "AWS"], "missing_keywords": ["Kubernetes"], "strengths": ["Cloud depth"], "improvements": ["Add k8s"]}`

	outcome := parser.Parse(raw, []string{"Python"}, []string{"Python", "AWS", "Kubernetes"}, 0)

	assert.Equal(t, types.TierStructured, outcome.Tier)
	assert.Equal(t, 85.0, outcome.Result.MatchPercentage)
	assert.Equal(t, []string{"Python", "AWS"}, outcome.Result.MatchedKeywords)
}

func TestParse_StructuredInFence(t *testing.T) {
	parser := NewParser(nil)
	raw := "```json\n{\"match_percentage\": 70, \"matched_keywords\": [\"Go\"]}\n```"

	outcome := parser.Parse(raw, nil, nil, 0)

	assert.Equal(t, types.TierStructured, outcome.Tier)
	assert.Equal(t, 70.0, outcome.Result.MatchPercentage)
}

func TestParse_ExtractedTier(t *testing.T) {
	parser := NewParser(nil)
	raw := "The resume is a 65% match.\nMissing keywords: Terraform, Helm"

	outcome := parser.Parse(raw, nil, nil, 0)

	assert.Equal(t, types.TierExtracted, outcome.Tier)
	assert.Equal(t, 65.0, outcome.Result.MatchPercentage)
	assert.Equal(t, []string{"Terraform", "Helm"}, outcome.Result.MissingKeywords)
}

func TestParse_JSONArrayFallsThrough(t *testing.T) {
	parser := NewParser(nil)

	outcome := parser.Parse(`["Python", "AWS"]`, []string{"Python"}, []string{"Python", "AWS"}, 0)

	assert.NotEqual(t, types.TierStructured, outcome.Tier)
}

func TestParse_RuleBasedTier(t *testing.T) {
	parser := NewParser(nil)
	resumeKW := []string{"Python", "SQL"}
	jobKW := []string{"Python", "AWS"}

	outcome := parser.Parse("I cannot help with that request.", resumeKW, jobKW, 0)

	require.Equal(t, types.TierRuleBased, outcome.Tier)
	assert.Equal(t, 50.0, outcome.Result.MatchPercentage)
	assert.Equal(t, []string{"Python"}, outcome.Result.MatchedKeywords)
	assert.Equal(t, []string{"AWS"}, outcome.Result.MissingKeywords)
}

func TestParse_RuleBasedEqualsKeywordOverlap(t *testing.T) {
	parser := NewParser(nil)
	resumeKW := []string{"Go", "Postgres", "Docker"}
	jobKW := []string{"Go", "Kafka", "Docker", "Terraform"}

	outcome := parser.Parse("unusable prose with no recognizable structure", resumeKW, jobKW, 0.4)

	want := BoostTapered(KeywordOverlap(resumeKW, jobKW, ""), 0.4)
	require.Equal(t, types.TierRuleBased, outcome.Tier)
	assert.Equal(t, want, outcome.Result)
}

func TestParse_SemanticBoostPerTier(t *testing.T) {
	parser := NewParser(nil)

	structured := parser.Parse(`{"match_percentage": 80}`, nil, nil, 0.9)
	assert.Equal(t, types.TierStructured, structured.Tier)
	assert.InDelta(t, 83.0, structured.Result.MatchPercentage, 0.01)
	assert.Equal(t, 0.9, structured.Result.SemanticScore)

	ruleBased := parser.Parse("nothing usable here", []string{"Go"}, []string{"Go", "Rust"}, 0.9)
	assert.Equal(t, types.TierRuleBased, ruleBased.Tier)
	assert.Equal(t, 68.0, ruleBased.Result.MatchPercentage)
}
