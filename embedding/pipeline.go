package embedding

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/rampart/ai"
	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/similarity"
)

const (
	defaultChunkSize   = 16
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Pipeline embeds document batches through a bounded worker pool, chunking
// the batch to respect provider rate limits. A chunk that still fails after
// retries degrades its documents to nil vectors (keyword-only retrieval)
// instead of failing the batch.
type Pipeline struct {
	embedder    ai.Embedder
	pool        *ants.Pool
	chunkSize   int
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent chunk embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunkSize sets the number of documents per embedding request.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}
		p.chunkSize = size
		return nil
	}
}

// WithRetry sets the per-chunk retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "embedding")
		return nil
	}
}

// NewPipeline creates an embedding pipeline over the given embedder.
func NewPipeline(embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		embedder:    embedder,
		pool:        pool,
		chunkSize:   defaultChunkSize,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default().With("component", "embedding"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Release shuts down the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// EmbedDocuments embeds every document in place and returns the number of
// documents that degraded to nil vectors because their chunk failed.
// Vectors are normalized to unit length.
func (p *Pipeline) EmbedDocuments(ctx context.Context, docs []*core.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	var wg sync.WaitGroup
	var degraded atomic.Int64

	for start := 0; start < len(docs); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(docs) {
			end = len(docs)
		}
		chunk := docs[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if !p.embedChunk(ctx, chunk) {
				degraded.Add(int64(len(chunk)))
			}
		})
		if err != nil {
			// Pool rejected the task; run degradation inline.
			wg.Done()
			p.logger.Warn("worker pool rejected chunk", "err", err)
			degradeChunk(chunk)
			degraded.Add(int64(len(chunk)))
		}
	}

	wg.Wait()
	if n := degraded.Load(); n > 0 {
		p.logger.Warn("some documents degraded to keyword-only",
			"degraded", n, "total", len(docs))
		return int(n), nil
	}
	return 0, nil
}

// embedChunk embeds one chunk with retries. Returns false when the chunk
// degraded.
func (p *Pipeline) embedChunk(ctx context.Context, chunk []*core.Document) bool {
	texts := make([]string, len(chunk))
	for i, doc := range chunk {
		texts[i] = doc.Content
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.maxAttempts, p.baseDelay)

	if err != nil || len(vectors) != len(chunk) {
		p.logger.Warn("chunk embedding failed after retries",
			"chunk_size", len(chunk), "err", err)
		degradeChunk(chunk)
		return false
	}

	for i, doc := range chunk {
		doc.Vector = similarity.Normalize(vectors[i])
	}
	return true
}

func degradeChunk(chunk []*core.Document) {
	for _, doc := range chunk {
		doc.Vector = nil
	}
}
