package search

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/poiesic/rampart/core"
)

// defaultCacheSize bounds the number of cached result sets.
const defaultCacheSize = 512

// resultCache is the advisory query-result cache. Eviction and staleness
// are acceptable; a miss just redoes the work.
type resultCache struct {
	cache *ristretto.Cache[string, []core.SearchResult]
}

func newResultCache(size int64) (*resultCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []core.SearchResult]{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &resultCache{cache: cache}, nil
}

// key derives the cache key from the query and caller context.
func (c *resultCache) key(query string, qctx Context) string {
	return fmt.Sprintf("%d|%t|%d", core.IDFromContent(query), qctx.Expert, qctx.Domain)
}

func (c *resultCache) get(key string) ([]core.SearchResult, bool) {
	return c.cache.Get(key)
}

func (c *resultCache) put(key string, results []core.SearchResult) {
	c.cache.Set(key, results, 1)
}

// wait flushes pending writes. Used by tests; production reads tolerate
// the write buffer's delay.
func (c *resultCache) wait() {
	c.cache.Wait()
}

func (c *resultCache) close() {
	c.cache.Close()
}
