package search

import (
	"github.com/poiesic/rampart/core"
)

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during a search.
type SearchMonitor interface {
	Start(query string)
	CacheHit(query string)
	AfterAnalysis(analysis core.QueryAnalysis)
	AfterWeights(weights core.WeightVector)
	AfterExpansion(effectiveQuery string, expansions []string)
	AfterCorpusQuery(candidates int, keywordOnly bool)
	AfterRerank(results []core.SearchResult)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) CacheHit(_ string)                    {}
func (n *noopMonitor) AfterAnalysis(_ core.QueryAnalysis)   {}
func (n *noopMonitor) AfterWeights(_ core.WeightVector)     {}
func (n *noopMonitor) AfterExpansion(_ string, _ []string)  {}
func (n *noopMonitor) AfterCorpusQuery(_ int, _ bool)       {}
func (n *noopMonitor) AfterRerank(_ []core.SearchResult)    {}
func (n *noopMonitor) Finish(_ []core.SearchResult)         {}
