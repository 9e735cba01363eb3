package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// semanticStrengthThreshold is the semantic score above which a strength
// note citing the alignment is appended.
const semanticStrengthThreshold = 0.6

// KeywordOverlap scores two keyword lists by set overlap. Job keywords
// present verbatim (case-insensitive) in the resume list are exact matches;
// job keywords found only as substrings of the raw resume text are partial
// matches. The percentage is matches over job keywords, rounded. With an
// empty resume text the scorer degrades to pure set overlap, which is the
// terminal fallback of the parsing cascade.
func KeywordOverlap(resumeKeywords, jobKeywords []string, resumeText string) types.MatchResult {
	result := types.EmptyMatchResult()

	resumeSet := make(map[string]struct{}, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		resumeSet[strings.ToLower(kw)] = struct{}{}
	}
	resumeLower := strings.ToLower(resumeText)

	for _, kw := range jobKeywords {
		lower := strings.ToLower(kw)
		if _, exact := resumeSet[lower]; exact {
			result.MatchedKeywords = append(result.MatchedKeywords, kw)
			continue
		}
		if resumeLower != "" && strings.Contains(resumeLower, lower) {
			result.MatchedKeywords = append(result.MatchedKeywords, kw)
			continue
		}
		result.MissingKeywords = append(result.MissingKeywords, kw)
	}

	if len(jobKeywords) > 0 {
		result.MatchPercentage = math.Round(float64(len(result.MatchedKeywords)) / float64(len(jobKeywords)) * 100)
	}
	return result
}

// BoostWeighted blends an existing percentage with the semantic score as a
// 0.7/0.3 weighted average. Used on results that came from the completion
// service (structured or extracted tiers). No-op when score is zero.
func BoostWeighted(result types.MatchResult, semanticScore float64) types.MatchResult {
	if semanticScore <= 0 {
		return result
	}

	blended := result.MatchPercentage/100*0.7 + semanticScore*0.3
	result.MatchPercentage = clamp(blended*100, 0, 100)
	result.SemanticScore = semanticScore
	appendStrengthNote(&result, semanticScore)
	return result
}

// BoostTapered adds a semantic boost of up to 30 points, scaled by a
// confidence factor that shrinks as the existing percentage grows. Used on
// the rule-based tier, where keyword overlap alone tends to under-score.
// The boosted percentage never drops below the input and never exceeds 100.
func BoostTapered(result types.MatchResult, semanticScore float64) types.MatchResult {
	if semanticScore <= 0 {
		return result
	}

	boost := float64(int(semanticScore * 30))

	var factor float64
	switch {
	case result.MatchPercentage < 50:
		factor = 1.0
	case result.MatchPercentage < 75:
		factor = 0.7
	default:
		factor = 0.3
	}

	result.MatchPercentage = clamp(result.MatchPercentage+float64(int(boost*factor)), 0, 100)
	result.SemanticScore = semanticScore
	appendStrengthNote(&result, semanticScore)
	return result
}

// appendStrengthNote records strong semantic alignment as a strength.
func appendStrengthNote(result *types.MatchResult, semanticScore float64) {
	if semanticScore <= semanticStrengthThreshold {
		return
	}
	note := fmt.Sprintf("Strong semantic alignment (%d%%) between resume and role", int(semanticScore*100))
	for _, s := range result.Strengths {
		if s == note {
			return
		}
	}
	result.Strengths = append(result.Strengths, note)
}
