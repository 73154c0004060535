// Package grading scores generated answers against expected keywords.
//
// The grader is a substring heuristic, not a semantic judge. Known
// limitations: a keyword embedded in a longer word still matches, and a
// keyword inside a multi-clause sentence that also carries a negation
// phrase is not counted even when the clause containing it is affirmative.
package grading

import "strings"

// negationPhrases are matched as lowercase substrings of the response.
// A hit switches keyword matching to the sentence-level check.
var negationPhrases = []string{
	"don't have information",
	"do not have information",
	"don't have any information",
	"do not have any information",
	"does not provide",
	"doesn't provide",
	"does not contain",
	"doesn't contain",
	"does not mention",
	"doesn't mention",
	"not mentioned",
	"no information",
	"cannot find",
	"can't find",
	"unable to find",
	"not available in",
	"not covered",
}

// nonAnswerConnectives join a negation phrase to its subject, as in
// "no information about pressure sensors".
var nonAnswerConnectives = []string{" about ", " on ", " regarding "}

// Grader counts expected keywords present in a response.
type Grader struct{}

// NewGrader creates a new answer grader
func NewGrader() *Grader {
	return &Grader{}
}

// Score returns the number of expected keywords matched by the response.
// Callers derive a percentage as count/len(expectedKeywords)*100 and must
// guard the empty-keyword case themselves.
//
// A response whose every present keyword sits inside a negated construction
// ("<negation> about/on/regarding <keyword>") scores 0: it is a pure
// non-answer. Otherwise keywords match on substring presence, demoted to a
// sentence-level check when any negation phrase appears in the response.
func (g *Grader) Score(response string, expectedKeywords []string) int {
	if len(expectedKeywords) == 0 {
		return 0
	}

	responseLower := strings.ToLower(response)
	negated := containsNegation(responseLower)

	if negated && isPureNonAnswer(responseLower, expectedKeywords) {
		return 0
	}

	matched := 0
	for _, keyword := range expectedKeywords {
		keywordLower := strings.ToLower(keyword)
		if !strings.Contains(responseLower, keywordLower) {
			continue
		}
		if !negated {
			matched++
			continue
		}
		if matchedOutsideNegation(responseLower, keywordLower) {
			matched++
		}
	}

	return matched
}

// containsNegation reports whether any negation phrase occurs in the
// lowercased response
func containsNegation(responseLower string) bool {
	for _, phrase := range negationPhrases {
		if strings.Contains(responseLower, phrase) {
			return true
		}
	}
	return false
}

// isPureNonAnswer reports whether every expected keyword present in the
// response appears only inside a negated construction. A keyword that also
// occurs in a sentence free of negation phrases is not exclusively negated,
// so the response still counts as an answer. Keywords absent from the
// response do not count either way.
func isPureNonAnswer(responseLower string, expectedKeywords []string) bool {
	anyPresent := false
	for _, keyword := range expectedKeywords {
		keywordLower := strings.ToLower(keyword)
		if !strings.Contains(responseLower, keywordLower) {
			continue
		}
		anyPresent = true
		if !insideNegatedConstruction(responseLower, keywordLower) {
			return false
		}
		if matchedOutsideNegation(responseLower, keywordLower) {
			return false
		}
	}
	return anyPresent
}

// insideNegatedConstruction reports whether the keyword follows a negation
// phrase joined by about/on/regarding, as in "cannot find anything about X"
func insideNegatedConstruction(responseLower string, keywordLower string) bool {
	for _, phrase := range negationPhrases {
		start := strings.Index(responseLower, phrase)
		if start < 0 {
			continue
		}
		tail := responseLower[start+len(phrase):]
		for _, connective := range nonAnswerConnectives {
			idx := strings.Index(tail, connective)
			if idx < 0 {
				continue
			}
			if strings.Contains(tail[idx+len(connective):], keywordLower) {
				return true
			}
		}
	}
	return false
}

// matchedOutsideNegation applies the sentence-level check: the keyword counts
// only if at least one sentence containing it carries no negation phrase
func matchedOutsideNegation(responseLower string, keywordLower string) bool {
	for _, sentence := range splitSentences(responseLower) {
		if !strings.Contains(sentence, keywordLower) {
			continue
		}
		if !containsNegation(sentence) {
			return true
		}
	}
	return false
}

// splitSentences splits on the terminators '.', '!' and '?'
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}
