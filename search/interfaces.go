package search

import (
	"context"

	"github.com/poiesic/rampart/core"
)

// Candidate is a raw corpus hit with per-document sub-scores already
// computed by the corpus primitive.
type Candidate struct {
	Document     core.Document
	VectorScore  float64
	KeywordScore float64
}

// CorpusSearcher is the corpus search primitive the retriever runs on.
// Implementations must be thread-safe.
type CorpusSearcher interface {
	// Query retrieves up to limit candidates for the effective query,
	// with vector and keyword sub-scores populated. Returns
	// ErrVectorUnavailable when embedding-based scoring cannot run;
	// the retriever then degrades to KeywordOnly.
	Query(ctx context.Context, effectiveQuery string, weights core.WeightVector, limit int) ([]Candidate, error)

	// KeywordOnly retrieves candidates using lexical scoring alone.
	KeywordOnly(ctx context.Context, effectiveQuery string, limit int) ([]Candidate, error)
}

// Context carries caller-supplied hints about the requesting user.
// The zero value means no hints.
type Context struct {
	// Expert biases weighting toward keywords and always triggers reranking.
	Expert bool
	// Domain is the caller's domain focus; zero when unspecified.
	Domain core.SourceKind
}
