package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

func TestFeedback_Thresholds(t *testing.T) {
	tests := []struct {
		percentage float64
		wantPrefix string
	}{
		{95, "Excellent match!"},
		{80, "Excellent match!"},
		{79, "Good match"},
		{60, "Good match"},
		{59, "Moderate match"},
		{40, "Moderate match"},
		{39, "Limited match"},
		{0, "Limited match"},
	}

	for _, tt := range tests {
		result := types.EmptyMatchResult()
		result.MatchPercentage = tt.percentage
		assert.True(t, strings.HasPrefix(Feedback(result), tt.wantPrefix),
			"percentage %.0f should start with %q", tt.percentage, tt.wantPrefix)
	}
}

func TestFeedback_CitesKeywords(t *testing.T) {
	result := types.EmptyMatchResult()
	result.MatchPercentage = 66
	result.MatchedKeywords = []string{"Python", "AWS"}
	result.MissingKeywords = []string{"Kubernetes"}

	feedback := Feedback(result)

	assert.Contains(t, feedback, "Strong areas: Python, AWS.")
	assert.Contains(t, feedback, "Consider adding: Kubernetes.")
}

func TestFeedback_CapsCitedKeywords(t *testing.T) {
	result := types.EmptyMatchResult()
	result.MissingKeywords = []string{"kw1", "kw2", "kw3", "kw4", "kw5", "kw6", "kw7"}

	feedback := Feedback(result)

	assert.Contains(t, feedback, "Consider adding: kw1, kw2, kw3, kw4, kw5.")
	assert.NotContains(t, feedback, "kw6")
}
