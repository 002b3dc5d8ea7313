package kb

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/consilium-ai/consilium/pkg/config"
)

// retrievalCache wraps an LRU keyed on (role, normalized query, KB version,
// topK, maxChars), using hashicorp/golang-lru/v2 rather than hand-rolling
// one.
type retrievalCache struct {
	mu      sync.Mutex
	lru     *lru.Cache[string, RetrievalResult]
	maxSize int
	hits    int
	miss    int
}

func newRetrievalCache(size int) *retrievalCache {
	if size <= 0 {
		size = 1
	}
	c, _ := lru.New[string, RetrievalResult](size)
	return &retrievalCache{lru: c, maxSize: size}
}

func (c *retrievalCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits, c.miss = 0, 0
}

func (c *retrievalCache) get(key string) (RetrievalResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if ok {
		c.hits++
	} else {
		c.miss++
	}
	return v, ok
}

func (c *retrievalCache) put(key string, v RetrievalResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, v)
}

// Stats reports cache hit/miss counters, mirroring get_cache_stats.
type Stats struct {
	Size    int
	MaxSize int
	Hits    int
	Misses  int
}

func (c *retrievalCache) stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:    c.lru.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.miss,
	}
}

// cacheKey builds the composite retrieval cache key for a (role, query) pair
// against the store's current KB version and configured limits.
func cacheKey(role config.AgentRole, query, versionHash string, topK, maxChars int) string {
	normalized := normalizeQuery(query)
	sum := md5.Sum([]byte(normalized))
	queryHash := hex.EncodeToString(sum[:])[:8]
	return string(role) + ":" + queryHash + ":" + versionHash + ":" + strconv.Itoa(topK) + ":" + strconv.Itoa(maxChars)
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
