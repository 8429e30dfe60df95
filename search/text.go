package search

import (
	"strings"

	"github.com/poiesic/rampart/similarity"
)

// maxHighlights caps the number of highlight sentences per result.
const maxHighlights = 3

// splitSentences breaks content on sentence terminators and newlines.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// extractHighlights returns up to maxHighlights sentences from content that
// contain at least one query term.
func extractHighlights(content, query string) []string {
	terms := similarity.Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	var highlights []string
	for _, sentence := range splitSentences(content) {
		lower := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				highlights = append(highlights, sentence)
				break
			}
		}
		if len(highlights) == maxHighlights {
			break
		}
	}
	return highlights
}
