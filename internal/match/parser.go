package match

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/llm"
	"github.com/jonathan/smartmatch-advisor/internal/types"
	"github.com/jonathan/smartmatch-advisor/schemas"
)

// Parser turns the raw text of a match-analysis completion into a
// well-formed MatchResult through a three-tier cascade. Tiers are tried in
// order and the chain stops at the first success; the rule-based tier
// cannot fail, so a result is always produced.
type Parser struct {
	schema *gojsonschema.Schema
	log    *zap.Logger
}

// NewParser builds a Parser. The embedded MatchResult schema is compiled
// once here; compilation cannot fail for the embedded document.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemas.MatchResult))
	if err != nil {
		panic("embedded match result schema is invalid: " + err.Error())
	}
	return &Parser{schema: schema, log: log}
}

// Parse runs the cascade over a raw response. The keyword lists feed the
// extraction fallback (tier 2) and the rule-based scorer (tier 3);
// semanticScore is blended into whichever tier succeeds.
func (p *Parser) Parse(raw string, resumeKeywords, jobKeywords []string, semanticScore float64) types.ParseOutcome {
	if result, ok := p.parseStructured(raw); ok {
		p.log.Info("match response parsed", zap.String("tier", types.TierStructured.String()))
		return types.ParseOutcome{
			Tier:   types.TierStructured,
			Result: BoostWeighted(result, semanticScore),
		}
	}
	p.log.Warn("structured parse failed, trying text extraction")

	if result, err := ExtractFromText(raw, jobKeywords); err == nil {
		p.log.Info("match response parsed", zap.String("tier", types.TierExtracted.String()))
		return types.ParseOutcome{
			Tier:   types.TierExtracted,
			Result: BoostWeighted(result, semanticScore),
		}
	} else {
		p.log.Warn("text extraction failed, using rule-based fallback", zap.Error(err))
	}

	result := KeywordOverlap(resumeKeywords, jobKeywords, "")
	return types.ParseOutcome{
		Tier:   types.TierRuleBased,
		Result: BoostTapered(result, semanticScore),
	}
}

// parseStructured attempts strict JSON decoding. The response must both
// decode and satisfy the MatchResult schema (be a JSON object); valid JSON
// scalars or arrays fall through to extraction.
func (p *Parser) parseStructured(raw string) (types.MatchResult, bool) {
	cleaned := llm.CleanJSONBlock(raw)

	check, err := p.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil || !check.Valid() {
		return types.MatchResult{}, false
	}

	var mapping map[string]any
	if err := json.Unmarshal([]byte(cleaned), &mapping); err != nil {
		return types.MatchResult{}, false
	}

	return Normalize(mapping), true
}
