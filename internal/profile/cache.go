package profile

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gitforge/bossquest/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedProfileEntry wraps a profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string              `json:"version"`
	Profile  *domain.UserProfile `json:"profile"`
	CachedAt time.Time           `json:"cached_at"`
}

// profileCache provides an in-memory LRU cache for profile lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type profileCache struct {
	lru *expirable.LRU[string, *cachedProfileEntry]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfileEntry](size, nil, ttl),
	}
}

// Get retrieves a profile from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
func (c *profileCache) Get(username string) (*domain.UserProfile, bool) {
	entry, found := c.lru.Get(username)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(username)
		return nil, false
	}

	return entry.Profile, true
}

// Set stores a profile in the cache with current schema version.
func (c *profileCache) Set(username string, profile *domain.UserProfile) {
	entry := &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  profile,
		CachedAt: time.Now(),
	}
	c.lru.Add(username, entry)
}

// Invalidate removes a profile from the cache.
// Useful when the profile is updated after a battle resolves.
func (c *profileCache) Invalidate(username string) {
	c.lru.Remove(username)
}
