// Package bullets extracts bullet points from resume text and rewrites
// them against a job description through the completion service.
package bullets

import (
	"regexp"
	"strings"
)

// bulletLine recognizes glyph bullets and numbered list entries.
var bulletLine = regexp.MustCompile(`^(?:[-•*]|\d+\.)\s*`)

// Extract returns up to maxBullets bullet lines from the resume, with
// their markers stripped. Lines shorter than minLength after stripping
// carry no rewritable content and are skipped.
func Extract(resumeText string, maxBullets, minLength int) []string {
	bullets := []string{}
	for _, line := range strings.Split(resumeText, "\n") {
		line = strings.TrimSpace(line)
		if !bulletLine.MatchString(line) {
			continue
		}
		text := strings.TrimSpace(bulletLine.ReplaceAllString(line, ""))
		if len(text) <= minLength {
			continue
		}
		bullets = append(bullets, text)
		if len(bullets) >= maxBullets {
			break
		}
	}
	return bullets
}
