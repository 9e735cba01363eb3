// Package schemas embeds the JSON Schemas for the structured contracts the
// completion service is asked to honor. The parser validates Tier-1
// responses against MatchResult before trusting them; the bullet rewriter
// validates its response list against BulletSuggestions.
package schemas

import _ "embed"

//go:embed match_result.json
var MatchResult []byte

//go:embed bullet_suggestions.json
var BulletSuggestions []byte
