package keywords

// stopwords are common function words excluded by the heuristic extractor.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "up": {}, "about": {}, "into": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "above": {},
	"below": {}, "between": {}, "among": {}, "throughout": {},
}

// isStopword reports whether the lowercased token is a stopword.
func isStopword(lower string) bool {
	_, ok := stopwords[lower]
	return ok
}
