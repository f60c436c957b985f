package creator

import (
	"regexp"
	"strings"
)

// minKeywordLen is the shortest token kept as a keyword.
const minKeywordLen = 3

var punctuation = regexp.MustCompile(`[^\w\s]`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "will": {}, "with": {}, "every": {}, "when": {}, "me": {},
	"my": {}, "i": {},
}

// ExtractKeywords lowercases text, turns punctuation into spaces and returns
// the remaining words that are at least three characters long and not stop
// words, de-duplicated in order of first appearance.
//
// The result is a fixed point: extracting from the joined keywords yields the
// same keywords.
func ExtractKeywords(text string) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), " ")

	seen := make(map[string]struct{})
	keywords := []string{}
	for _, word := range strings.Fields(cleaned) {
		if len(word) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// BuildQuery joins keywords into a full-text OR query. Keywords from
// ExtractKeywords contain only word characters, so no quoting is needed.
func BuildQuery(keywords []string) string {
	return strings.Join(keywords, " OR ")
}
