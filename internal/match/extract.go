package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// percentagePatterns cover the phrasings a completion model uses when it
// answers in prose instead of JSON.
var percentagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)match(?:ing)?\s*(?:score|percentage|rate)?:?\s*(\d+)\s*%`),
	regexp.MustCompile(`(?i)(\d+)\s*%\s*match`),
	regexp.MustCompile(`(?i)(\d+)\s*percent`),
	regexp.MustCompile(`(?i)score:?\s*(\d+)`),
	regexp.MustCompile(`(?i)compatibility:?\s*(\d+)\s*%`),
}

// Section patterns slice the response from a recognized header up to the
// next recognized header (or end of text).
var (
	matchedSection      = regexp.MustCompile(`(?is)(?:matched|found|present|strong)(?:\s+keywords?)?:\s*(.*?)(?:missing|gaps|weak|strengths|recommendations|improvements|$)`)
	missingSection      = regexp.MustCompile(`(?is)(?:missing|gaps?|lacking|absent|weak)(?:\s+keywords?)?:\s*(.*?)(?:recommendations|improvements|suggestions|strengths|$)`)
	strengthsSection    = regexp.MustCompile(`(?is)strengths?:\s*(.*?)(?:improvements|recommendations|suggestions|missing|gaps|$)`)
	improvementsSection = regexp.MustCompile(`(?is)(?:improvements?|recommendations?):\s*(.*?)(?:strengths|missing|gaps|$)`)
)

// listItemMarker strips bullet glyphs, numbering, and other list markers
// from the start of a line.
var listItemMarker = regexp.MustCompile(`^[-•*\d+.)\s]+`)

// ExtractFromText recovers a MatchResult from a natural-language response.
// It fails (sending the cascade to the rule-based tier) when the text
// contains neither a percentage phrasing nor any recognized section header.
func ExtractFromText(raw string, jobKeywords []string) (types.MatchResult, error) {
	result := types.EmptyMatchResult()

	percentage, foundPercentage := findPercentage(raw)

	matched, foundMatched := findSection(matchedSection, raw)
	missing, foundMissing := findSection(missingSection, raw)
	strengths, _ := findSection(strengthsSection, raw)
	improvements, _ := findSection(improvementsSection, raw)

	if !foundPercentage && !foundMatched && !foundMissing {
		return result, fmt.Errorf("no percentage or section patterns recognized in response")
	}

	result.MatchedKeywords = matched
	result.MissingKeywords = missing
	result.Strengths = strengths
	result.Improvements = improvements

	// When sections yielded nothing, fall back to direct substring presence
	// of each job keyword in the raw text.
	if len(result.MatchedKeywords) == 0 && len(result.MissingKeywords) == 0 {
		lower := strings.ToLower(raw)
		for _, kw := range jobKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				result.MatchedKeywords = append(result.MatchedKeywords, kw)
			} else {
				result.MissingKeywords = append(result.MissingKeywords, kw)
			}
		}
		if !foundPercentage && len(jobKeywords) > 0 {
			percentage = float64(len(result.MatchedKeywords)) / float64(len(jobKeywords)) * 100
		}
	}

	result.MatchPercentage = clamp(percentage, 0, 100)
	return result, nil
}

func findPercentage(text string) (float64, bool) {
	for _, pattern := range percentagePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return float64(n), true
		}
	}
	return 0, false
}

func findSection(pattern *regexp.Regexp, text string) ([]string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return []string{}, false
	}
	return extractListItems(m[1]), true
}

// extractListItems splits a section slice on bullet markers or numbering
// line by line; if no line survives and the slice carries commas, it falls
// back to a comma split. Very short fragments are noise and dropped.
func extractListItems(section string) []string {
	items := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = listItemMarker.ReplaceAllString(strings.TrimSpace(line), "")
		line = strings.TrimSpace(line)
		if len(line) > 2 {
			items = append(items, line)
		}
	}

	if len(items) == 1 && strings.Contains(items[0], ",") {
		items = cleanItems(strings.Split(items[0], ","))
	}
	return items
}
