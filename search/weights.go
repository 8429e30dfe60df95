package search

import (
	"sync"

	"github.com/poiesic/rampart/core"
)

// Weight adjustments applied on top of the base split per query type.
const (
	expertKeywordBoost    = 0.1
	financialKeywordBoost = 0.05
	// historyBlendRatio is the share the current computation keeps when
	// blending with the learned average for the same intent.
	historyBlendRatio = 0.7
)

// baseWeights returns the vector/keyword split for a query type.
func baseWeights(queryType core.QueryType) core.WeightVector {
	switch queryType {
	case core.QueryKeywordHeavy:
		return core.WeightVector{Vector: 0.4, Keyword: 0.6}
	case core.QuerySemanticHeavy:
		return core.WeightVector{Vector: 0.85, Keyword: 0.15}
	default:
		return core.WeightVector{Vector: 0.7, Keyword: 0.3}
	}
}

// computeWeights derives the final weight vector from the analysis, caller
// context, and any learned history for the intent. The result always sums
// to 1.
func computeWeights(analysis core.QueryAnalysis, qctx Context, history *weightHistory) core.WeightVector {
	weights := baseWeights(analysis.Type)
	if qctx.Expert {
		weights.Keyword += expertKeywordBoost
	}
	if qctx.Domain == core.SourceFinancial {
		weights.Keyword += financialKeywordBoost
	}
	if learned, ok := history.get(analysis.Intent); ok {
		weights = weights.Blend(learned, historyBlendRatio)
	}
	return weights.Normalize()
}

// weightHistory tracks the running average weight vector per intent.
// It is bounded by the intent cardinality and advisory only: staleness is
// acceptable, corruption is not.
type weightHistory struct {
	mu       sync.Mutex
	averages map[core.Intent]core.WeightVector
	counts   map[core.Intent]int
}

func newWeightHistory() *weightHistory {
	return &weightHistory{
		averages: make(map[core.Intent]core.WeightVector),
		counts:   make(map[core.Intent]int),
	}
}

func (h *weightHistory) get(intent core.Intent) (core.WeightVector, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.averages[intent]
	return w, ok
}

// update folds weights into the running average for the intent.
func (h *weightHistory) update(intent core.Intent, weights core.WeightVector) {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := h.counts[intent]
	avg := h.averages[intent]
	n := float64(count)
	h.averages[intent] = core.WeightVector{
		Vector:  (avg.Vector*n + weights.Vector) / (n + 1),
		Keyword: (avg.Keyword*n + weights.Keyword) / (n + 1),
	}
	h.counts[intent] = count + 1
}
