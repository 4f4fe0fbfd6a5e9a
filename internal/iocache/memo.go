package iocache

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/schema"
	"golang.org/x/sync/singleflight"
)

// CurrentCacheVersion defines the version of the persisted cache schema.
// Bump when the serialized CorrelationResult shape changes; older rows
// then read as misses instead of decoding garbage.
const CurrentCacheVersion = 1

// cacheEntry pairs a result with a monotonically increasing creation
// stamp. The stamp exists for debugging and ordering only; upstream
// data is historical, so entries never expire.
type cacheEntry struct {
	result schema.CorrelationResult
	seq    int64
}

// ArtifactCache memoizes correlation results by fingerprint. Concurrent
// GetOrCompute calls for the same fingerprint serialize onto a single
// computation; unrelated fingerprints compute in parallel. A persistent
// result store, when configured, is consulted on misses and written
// through on computes, so warm results survive process restarts.
//
// The cache is unbounded: the working set is a handful of diseases
// times five regions times a small lag range.
type ArtifactCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	seq     atomic.Int64
	store   contract.ResultStore // nil disables persistence
}

// NewArtifactCache creates a cache backed by the given result store.
// Pass nil for a purely in-memory cache.
func NewArtifactCache(store contract.ResultStore) *ArtifactCache {
	return &ArtifactCache{
		entries: make(map[string]cacheEntry),
		store:   store,
	}
}

// GetOrCompute returns the cached result for the fingerprint, invoking
// compute at most once per fingerprint across concurrent callers.
// Errors from compute are returned to every waiting caller and are
// never cached.
func (c *ArtifactCache) GetOrCompute(fingerprint string, compute func() (schema.CorrelationResult, error)) (schema.CorrelationResult, error) {
	if result, ok := c.lookup(fingerprint); ok {
		return result, nil
	}

	v, err, _ := c.group.Do(fingerprint, func() (any, error) {
		// A previous flight may have filled the entry while this caller
		// was waiting to start.
		if result, ok := c.lookup(fingerprint); ok {
			return result, nil
		}
		if result, ok := c.hydrate(fingerprint); ok {
			c.insert(fingerprint, result)
			return result, nil
		}

		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.insert(fingerprint, result)
		c.flush(fingerprint, result)
		return result, nil
	})
	if err != nil {
		return schema.CorrelationResult{}, err
	}
	return v.(schema.CorrelationResult), nil
}

// Len returns the number of in-memory entries.
func (c *ArtifactCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EntryStamp returns the creation stamp for a fingerprint, if cached.
// Stamps increase strictly in creation order.
func (c *ArtifactCache) EntryStamp(fingerprint string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[fingerprint]
	return entry.seq, ok
}

func (c *ArtifactCache) lookup(fingerprint string) (schema.CorrelationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[fingerprint]
	return entry.result, ok
}

func (c *ArtifactCache) insert(fingerprint string, result schema.CorrelationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[fingerprint]; ok {
		return
	}
	c.entries[fingerprint] = cacheEntry{result: result, seq: c.seq.Add(1)}
}

// hydrate attempts to load a previously persisted result. Version
// mismatches and undecodable rows are treated as misses.
func (c *ArtifactCache) hydrate(fingerprint string) (schema.CorrelationResult, bool) {
	if c.store == nil {
		return schema.CorrelationResult{}, false
	}
	data, version, _, err := c.store.Get(fingerprint)
	if err != nil || version != CurrentCacheVersion {
		return schema.CorrelationResult{}, false
	}
	var result schema.CorrelationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return schema.CorrelationResult{}, false
	}
	return result, true
}

// flush writes a computed result through to the persistent store.
// Persistence failures are not fatal; the in-memory entry stands.
func (c *ArtifactCache) flush(fingerprint string, result schema.CorrelationResult) {
	if c.store == nil {
		return
	}
	if data, err := json.Marshal(result); err == nil {
		_ = c.store.Set(fingerprint, data, CurrentCacheVersion, time.Now().Unix())
	}
}
