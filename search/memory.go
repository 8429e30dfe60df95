package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/poiesic/rampart/ai"
	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/similarity"
)

// MemoryCorpus is an in-memory CorpusSearcher used by tests and the CLI
// demo. With an embedder it serves the full hybrid contract; without one
// it reports ErrVectorUnavailable and serves the keyword-only path.
type MemoryCorpus struct {
	mu       sync.RWMutex
	docs     []core.Document
	embedder ai.Embedder
}

var _ CorpusSearcher = (*MemoryCorpus)(nil)

// NewMemoryCorpus creates an empty in-memory corpus.
// The embedder may be nil for a keyword-only corpus.
func NewMemoryCorpus(embedder ai.Embedder) *MemoryCorpus {
	return &MemoryCorpus{embedder: embedder}
}

// Add validates and stores documents. Documents without an ID get a
// content-derived one; documents without a vector are embedded when an
// embedder is available.
func (m *MemoryCorpus) Add(ctx context.Context, docs ...core.Document) error {
	for _, doc := range docs {
		if err := core.ValidateDocument(&doc); err != nil {
			return err
		}
		if doc.Id == 0 {
			doc.Id = core.IDFromContent(doc.Content)
		}
		if !doc.HasVector() && m.embedder != nil {
			vector, err := m.embedder.EmbedText(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("embedding document %d: %w", doc.Id, err)
			}
			doc.Vector = similarity.Normalize(vector)
		}

		m.mu.Lock()
		m.docs = append(m.docs, doc)
		m.mu.Unlock()
	}
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryCorpus) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Query scores every document against the effective query with both
// signals and returns the top candidates by the weighted combination.
func (m *MemoryCorpus) Query(ctx context.Context, effectiveQuery string, weights core.WeightVector, limit int) ([]Candidate, error) {
	if m.embedder == nil {
		return nil, ErrVectorUnavailable
	}
	queryVector, err := m.embedder.EmbedText(ctx, effectiveQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVectorUnavailable, err)
	}
	queryVector = similarity.Normalize(queryVector)

	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := make([]Candidate, 0, len(m.docs))
	for _, doc := range m.docs {
		c := Candidate{
			Document:     doc,
			KeywordScore: similarity.KeywordScore(effectiveQuery, doc.Content),
		}
		if doc.HasVector() {
			c.VectorScore = similarity.Cosine(queryVector, doc.Vector)
		}
		if c.VectorScore > 0 || c.KeywordScore > 0 {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si := weights.Vector*candidates[i].VectorScore + weights.Keyword*candidates[i].KeywordScore
		sj := weights.Vector*candidates[j].VectorScore + weights.Keyword*candidates[j].KeywordScore
		return si > sj
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// KeywordOnly scores documents lexically, ignoring vectors entirely.
func (m *MemoryCorpus) KeywordOnly(ctx context.Context, effectiveQuery string, limit int) ([]Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := make([]Candidate, 0, len(m.docs))
	for _, doc := range m.docs {
		score := similarity.KeywordScore(effectiveQuery, doc.Content)
		if score > 0 {
			candidates = append(candidates, Candidate{Document: doc, KeywordScore: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].KeywordScore > candidates[j].KeywordScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
