// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/query"
)

const (
	// candidateLimit is the superset size requested from the corpus so MMR
	// has something to trade away.
	candidateLimit = 50
	// confidenceScale maps a combined score to a confidence, capped at 1.
	confidenceScale = 1.2
	// teachThreshold is the mean confidence a result set must exceed before
	// it updates the weight history.
	teachThreshold = 0.7
)

// Retriever runs adaptive hybrid search over a corpus: query analysis,
// weight adaptation, expansion, scoring, conditional reranking, and MMR
// diversity selection.
type Retriever struct {
	corpus   CorpusSearcher
	analyzer *query.Analyzer
	expander *query.Expander
	reranker Reranker
	cache    *resultCache
	history  *weightHistory
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithReranker replaces the default token-overlap reranker.
func WithReranker(reranker Reranker) Option {
	return func(r *Retriever) error {
		r.reranker = reranker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "search")
		return nil
	}
}

// NewRetriever creates a retriever over the given corpus.
func NewRetriever(corpus CorpusSearcher, opts ...Option) (*Retriever, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	expander, err := query.NewExpander()
	if err != nil {
		return nil, err
	}
	cache, err := newResultCache(defaultCacheSize)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		corpus:   corpus,
		analyzer: query.NewAnalyzer(),
		expander: expander,
		reranker: overlapReranker{},
		cache:    cache,
		history:  newWeightHistory(),
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			cache.close()
			return nil, err
		}
	}

	return r, nil
}

// Close releases the result cache.
func (r *Retriever) Close() error {
	r.cache.close()
	return nil
}

// AdaptiveSearch runs the full retrieval pipeline for a query.
func (r *Retriever) AdaptiveSearch(ctx context.Context, rawQuery string, qctx Context) ([]core.SearchResult, error) {
	return r.AdaptiveSearchWithMonitor(ctx, rawQuery, qctx, nil)
}

// AdaptiveSearchWithMonitor runs the full retrieval pipeline with
// monitoring. The monitor receives callbacks at each stage.
func (r *Retriever) AdaptiveSearchWithMonitor(ctx context.Context, rawQuery string, qctx Context, monitor SearchMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(rawQuery)

	key := r.cache.key(rawQuery, qctx)
	if cached, ok := r.cache.get(key); ok {
		monitor.CacheHit(rawQuery)
		return cached, nil
	}

	analysis := r.analyzer.Analyze(rawQuery)
	monitor.AfterAnalysis(analysis)

	weights := computeWeights(analysis, qctx, r.history)
	monitor.AfterWeights(weights)

	expansions := r.expander.Expand(rawQuery, analysis)
	effective := query.EffectiveQuery(rawQuery, expansions)
	monitor.AfterExpansion(effective, expansions)

	candidates, keywordOnly, err := r.queryCorpus(ctx, effective, weights)
	if err != nil {
		return nil, err
	}
	monitor.AfterCorpusQuery(len(candidates), keywordOnly)

	if keywordOnly {
		weights = core.WeightVector{Vector: 0, Keyword: 1}
	}

	results := r.scoreCandidates(candidates, rawQuery, weights)

	if r.shouldRerank(analysis, qctx) {
		r.rerank(rawQuery, results)
		monitor.AfterRerank(results)
	}

	selected := selectDiverse(results, maxResults)
	r.cache.put(key, selected)
	if meanConfidence(selected) > teachThreshold {
		r.history.update(analysis.Intent, weights)
	}

	monitor.Finish(selected)
	r.logger.Debug("adaptive search completed",
		"query_type", analysis.Type.String(),
		"intent", analysis.Intent.String(),
		"candidates", len(candidates),
		"results", len(selected),
		"keyword_only", keywordOnly)
	return selected, nil
}

// queryCorpus runs the hybrid corpus query, degrading to the keyword-only
// path when vector scoring is unavailable.
func (r *Retriever) queryCorpus(ctx context.Context, effective string, weights core.WeightVector) ([]Candidate, bool, error) {
	candidates, err := r.corpus.Query(ctx, effective, weights, candidateLimit)
	if err == nil {
		return candidates, false, nil
	}

	r.logger.Warn("hybrid corpus query failed, degrading to keyword-only", "err", err)
	candidates, kwErr := r.corpus.KeywordOnly(ctx, effective, candidateLimit)
	if kwErr != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, kwErr)
	}
	return candidates, true, nil
}

// scoreCandidates converts corpus candidates into scored search results
// with highlights and confidence.
func (r *Retriever) scoreCandidates(candidates []Candidate, rawQuery string, weights core.WeightVector) []core.SearchResult {
	results := make([]core.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		combined := weights.Vector*c.VectorScore + weights.Keyword*c.KeywordScore
		confidence := confidenceScale * combined
		if confidence > 1 {
			confidence = 1
		}
		results = append(results, core.SearchResult{
			DocumentId: c.Document.Id,
			Content:    c.Document.Content,
			Source:     c.Document.Source,
			Scores: core.Scores{
				Vector:   c.VectorScore,
				Keyword:  c.KeywordScore,
				Combined: combined,
			},
			Highlights: extractHighlights(c.Document.Content, rawQuery),
			Confidence: confidence,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Combined > results[j].Scores.Combined
	})
	return results
}

// shouldRerank reports whether the conditional rerank stage applies.
func (r *Retriever) shouldRerank(analysis core.QueryAnalysis, qctx Context) bool {
	return analysis.Type == core.QuerySemanticHeavy ||
		analysis.Intent == core.IntentComparison ||
		qctx.Expert
}

// rerank recomputes each result's semantic score via the reranker and
// recombines the sub-scores, then resorts.
func (r *Retriever) rerank(rawQuery string, results []core.SearchResult) {
	for i := range results {
		semantic := r.reranker.Score(rawQuery, results[i].Content)
		results[i].Scores.Semantic = semantic
		results[i].Scores.Combined = rerankVectorWeight*results[i].Scores.Vector +
			rerankKeywordWeight*results[i].Scores.Keyword +
			rerankSemanticWeight*semantic
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Combined > results[j].Scores.Combined
	})
}

func meanConfidence(results []core.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for i := range results {
		sum += results[i].Confidence
	}
	return sum / float64(len(results))
}
