package search

import (
	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/similarity"
)

const (
	// mmrLambda balances relevance against diversity in MMR selection.
	mmrLambda = 0.7
	// maxResults caps the final result list.
	maxResults = 20
)

// selectDiverse applies maximal marginal relevance over score-sorted
// results: the best result seeds the output, then each round adds the
// candidate maximizing λ·relevance + (1−λ)·diversity, where diversity is
// one minus the highest Jaccard similarity to anything already selected.
// Near-duplicates of already-selected results are thereby pushed down or
// out.
func selectDiverse(results []core.SearchResult, limit int) []core.SearchResult {
	if len(results) == 0 {
		return results
	}
	if limit > len(results) {
		limit = len(results)
	}

	selected := make([]core.SearchResult, 0, limit)
	remaining := make([]core.SearchResult, len(results))
	copy(remaining, results)

	// Seed with the single best-scoring result.
	best := 0
	for i := range remaining {
		if remaining[i].Scores.Combined > remaining[best].Scores.Combined {
			best = i
		}
	}
	seed := remaining[best]
	seed.Scores.Diversity = 1
	selected = append(selected, seed)
	remaining = append(remaining[:best], remaining[best+1:]...)

	for len(selected) < limit && len(remaining) > 0 {
		bestIdx := -1
		bestScore := 0.0
		bestDiversity := 0.0
		for i := range remaining {
			diversity := 1 - maxSimilarityTo(remaining[i].Content, selected)
			mmr := mmrLambda*remaining[i].Scores.Combined + (1-mmrLambda)*diversity
			if bestIdx == -1 || mmr > bestScore {
				bestIdx = i
				bestScore = mmr
				bestDiversity = diversity
			}
		}
		pick := remaining[bestIdx]
		pick.Scores.Diversity = bestDiversity
		selected = append(selected, pick)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

// maxSimilarityTo returns the highest Jaccard token similarity between
// content and any already-selected result.
func maxSimilarityTo(content string, selected []core.SearchResult) float64 {
	var max float64
	for i := range selected {
		if sim := similarity.Jaccard(content, selected[i].Content); sim > max {
			max = sim
		}
	}
	return max
}
