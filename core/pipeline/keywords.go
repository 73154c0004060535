package pipeline

import (
	"regexp"
	"strings"
)

// stopWords are filtered out of extracted keyword sets
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {},
	"is": {}, "are": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords tokenizes free text into a deduplicated list of significant
// terms: lowercased, punctuation stripped, tokens of length <= 2 and stop
// words dropped. The result has set semantics; first-seen order is kept so
// the derived search pattern is deterministic. Empty input yields an empty
// result.
func ExtractKeywords(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")

	seen := make(map[string]struct{})
	var keywords []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}

	return keywords
}

// SearchPattern joins keywords into the OR-style disjunction consumed by the
// store's lexical-rank operator. Returns an empty string for no keywords,
// which callers must treat as "skip the lexical branch".
func SearchPattern(keywords []string) string {
	return strings.Join(keywords, " | ")
}
