package match

import (
	"fmt"
	"strings"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// maxFeedbackItems caps the keywords cited in the feedback sentence.
const maxFeedbackItems = 5

// Feedback renders a human-readable summary of a match result.
func Feedback(result types.MatchResult) string {
	var feedback string
	switch {
	case result.MatchPercentage >= 80:
		feedback = "Excellent match! Your resume aligns very well with the job requirements."
	case result.MatchPercentage >= 60:
		feedback = "Good match with room for improvement."
	case result.MatchPercentage >= 40:
		feedback = "Moderate match. Consider adding more relevant keywords."
	default:
		feedback = "Limited match. Significant improvements needed to align with job requirements."
	}

	if len(result.MatchedKeywords) > 0 {
		feedback += fmt.Sprintf(" Strong areas: %s.", strings.Join(capped(result.MatchedKeywords), ", "))
	}
	if len(result.MissingKeywords) > 0 {
		feedback += fmt.Sprintf(" Consider adding: %s.", strings.Join(capped(result.MissingKeywords), ", "))
	}
	return feedback
}

func capped(items []string) []string {
	if len(items) > maxFeedbackItems {
		return items[:maxFeedbackItems]
	}
	return items
}
