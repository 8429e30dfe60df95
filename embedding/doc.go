// Package embedding provides a chunked, worker-pooled batch embedding
// pipeline with per-chunk retry and graceful degradation: a chunk that
// fails after retries leaves its documents without vectors rather than
// failing the whole batch.
package embedding
