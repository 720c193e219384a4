package cache

import (
	"errors"
	"fmt"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache defines the interface for all cache implementations
type Cache interface {
	// Get retrieves a value from the cache
	Get(key string, value interface{}) error

	// Set stores a value in the cache with an optional TTL
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error

	// Close cleans up the cache resources
	Close() error
}

// KeyBuilder helps build consistent cache keys
type KeyBuilder struct {
	prefix string
}

func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{prefix: prefix}
}

// RepoChangesKey keys a repo scan by slug and window start date. Day
// resolution is deliberate: two runs on the same day with the same lookback
// share a cache entry even though their cutoffs differ by a few minutes.
func (b *KeyBuilder) RepoChangesKey(slug string, since time.Time) string {
	return fmt.Sprintf("%s:repo_changes:%s:%s", b.prefix, slug, since.UTC().Format("2006-01-02"))
}

// NewDefaultCache creates the standard file-backed cache.
func NewDefaultCache() (Cache, error) {
	return NewFileCache("changedigest")
}
