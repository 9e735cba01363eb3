// Package match implements the match-scoring protocol: result
// normalization, the three-tier response-parsing cascade, the hybrid
// keyword/semantic scorer, and feedback generation.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// digitRun extracts the first run of digits from strings like "75%" or
// "score: 75".
var digitRun = regexp.MustCompile(`\d+`)

// freeTextDelimiters are tried in order when splitting a free-text field
// delivered as a single string; the first delimiter present wins.
var freeTextDelimiters = []string{"\n", ";", ".", "|"}

// Normalize forces an arbitrary result mapping from any source into the
// canonical MatchResult shape. Missing fields get type-appropriate empty
// defaults; list fields are always lists afterwards, never scalars or nil.
// Normalizing an already-normalized result is a no-op.
func Normalize(raw map[string]any) types.MatchResult {
	result := types.EmptyMatchResult()
	if raw == nil {
		return result
	}

	result.MatchedKeywords = coerceList(fieldValue(raw, "matched_keywords", "matches"), false)
	result.MissingKeywords = coerceList(fieldValue(raw, "missing_keywords", "gaps"), false)
	result.Strengths = coerceList(fieldValue(raw, "strengths"), true)
	result.Improvements = coerceList(fieldValue(raw, "improvements", "recommendations"), true)
	result.MatchPercentage = coercePercentage(fieldValue(raw, "match_percentage", "percentage"))

	if s, ok := fieldValue(raw, "semantic_score").(float64); ok {
		result.SemanticScore = clamp(s, 0, 1)
	}

	return result
}

// fieldValue returns the first present key among the canonical name and
// its documented aliases.
func fieldValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return v
		}
	}
	return nil
}

// coerceList turns any value into a clean string list. Strings are split
// on comma, or for free-text fields on the first matching delimiter among
// newline, semicolon, period, and pipe; with no delimiter the whole string
// is one item. Non-string scalars become a single-item list when truthy.
func coerceList(v any, freeText bool) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanItems(val)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
		return cleanItems(items)
	case string:
		return splitDelimited(val, freeText)
	default:
		if truthy(v) {
			return []string{fmt.Sprint(v)}
		}
		return []string{}
	}
}

func splitDelimited(s string, freeText bool) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	delimiter := ","
	if freeText && !strings.Contains(s, ",") {
		delimiter = ""
		for _, d := range freeTextDelimiters {
			if strings.Contains(s, d) {
				delimiter = d
				break
			}
		}
		if delimiter == "" {
			return []string{strings.TrimSpace(s)}
		}
	} else if !strings.Contains(s, ",") {
		return []string{strings.TrimSpace(s)}
	}

	return cleanItems(strings.Split(s, delimiter))
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// coercePercentage converts any percentage representation to a float64
// clamped to [0,100]. Strings yield their first digit run; anything
// unconvertible defaults to 0.
func coercePercentage(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return clamp(val, 0, 100)
	case float32:
		return clamp(float64(val), 0, 100)
	case int:
		return clamp(float64(val), 0, 100)
	case int64:
		return clamp(float64(val), 0, 100)
	case string:
		m := digitRun.FindString(val)
		if m == "" {
			return 0
		}
		var n float64
		if _, err := fmt.Sscanf(m, "%f", &n); err != nil {
			return 0
		}
		return clamp(n, 0, 100)
	default:
		return 0
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return val != ""
	default:
		return v != nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
