package types

// Tier identifies which stage of the response-parsing cascade produced a
// result. The cascade tries tiers in order and stops at the first success.
type Tier int

const (
	// TierStructured means the raw response decoded as strict JSON.
	TierStructured Tier = iota + 1
	// TierExtracted means the result was recovered from natural language.
	TierExtracted
	// TierRuleBased means the terminal keyword-overlap fallback ran.
	TierRuleBased
)

func (t Tier) String() string {
	switch t {
	case TierStructured:
		return "structured"
	case TierExtracted:
		return "extracted"
	case TierRuleBased:
		return "rule_based"
	default:
		return "unknown"
	}
}

// ParseOutcome tags a MatchResult with the tier that produced it, making
// each tier's entry and exit condition independently testable.
type ParseOutcome struct {
	Tier   Tier
	Result MatchResult
}
