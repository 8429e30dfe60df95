package similarity

import (
	"math"
	"strings"
)

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Empty or mismatched-length vectors score 0: callers may mix documents
// with and without embeddings, so a dimension mismatch is "no signal",
// never an error.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// KeywordScore returns the fraction of query terms found as substrings of
// content. Terms are whitespace-split, lowercased, and must be longer than
// one rune. An empty term list scores 0.
func KeywordScore(query, content string) float64 {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return 0
	}

	lowered := strings.ToLower(content)
	matched := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// HybridScore combines vector and keyword similarity with the given weights.
// Weights are assumed pre-normalized by the caller.
func HybridScore(vectorSim, keywordSim, vectorWeight, keywordWeight float64) float64 {
	return vectorSim*vectorWeight + keywordSim*keywordWeight
}

// Jaccard returns the token-set Jaccard similarity of two texts.
// Identical token sets score 1, disjoint sets 0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// queryTerms splits a query into lowercase terms longer than one rune.
func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

func tokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}
