package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// QueryCache memoizes ranked results per (trailing word, context) pair.
// Retyping after a backspace repeats recent queries, so a small cache keeps
// most keystrokes off the trie. Eviction drops the least recently used key.
type QueryCache struct {
	entries     map[string][]Candidate
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.Mutex
}

// NewQueryCache creates a cache holding at most maxEntries results.
func NewQueryCache(maxEntries int) *QueryCache {
	return &QueryCache{
		entries:    make(map[string][]Candidate, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(word, context string) string {
	return word + "\x1f" + context
}

// Get returns a copy of the cached result for key.
func (qc *QueryCache) Get(key string) ([]Candidate, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	result, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	qc.hits++
	qc.markAccessed(key)
	return cloneCandidates(result), true
}

// Put stores a copy of result under key.
func (qc *QueryCache) Put(key string, result []Candidate) {
	if qc.maxEntries <= 0 {
		return
	}
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if _, exists := qc.entries[key]; !exists && len(qc.entries) >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.entries[key] = cloneCandidates(result)
	qc.markAccessed(key)
}

// Reset drops every entry.
func (qc *QueryCache) Reset() {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.entries = make(map[string][]Candidate, qc.maxEntries)
	qc.accessTime = make(map[string]int64, qc.maxEntries)
}

// Stats reports cache occupancy and hits.
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(qc.entries),
		"maxCacheEntries": qc.maxEntries,
		"cacheHits":       int(qc.hits),
	}
}

func (qc *QueryCache) markAccessed(key string) {
	qc.accessCount++
	qc.accessTime[key] = qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range qc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(qc.entries, oldestKey)
		delete(qc.accessTime, oldestKey)
		log.Debugf("Evicted query %q from suggestion cache", oldestKey)
	}
}

func cloneCandidates(c []Candidate) []Candidate {
	if c == nil {
		return nil
	}
	out := make([]Candidate, len(c))
	copy(out, c)
	return out
}
