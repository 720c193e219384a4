package scan

import (
	"context"
	"log"
	"time"

	"github.com/reillywatson/changedigest/internal/cache"
)

// Scan results go stale as soon as new activity lands, so the TTL is short.
// An hour is enough to iterate on prompts without re-fetching every repo.
const scanCacheTTL = time.Hour

// CachedScanner wraps a RepoScanner with per-repo result caching.
type CachedScanner struct {
	scanner RepoScanner
	cache   cache.Cache
	kb      *cache.KeyBuilder
}

func NewCachedScanner(scanner RepoScanner, cacheImpl cache.Cache) *CachedScanner {
	return &CachedScanner{
		scanner: scanner,
		cache:   cacheImpl,
		kb:      cache.NewKeyBuilder("github"),
	}
}

// ScanRepo returns a cached scan when one is fresh, otherwise scans and
// caches. Cache failures are logged and never fail the scan.
func (c *CachedScanner) ScanRepo(ctx context.Context, slug string, since time.Time) (RepoChanges, error) {
	cacheKey := c.kb.RepoChangesKey(slug, since)

	var cached RepoChanges
	if err := c.cache.Get(cacheKey, &cached); err == nil {
		return cached, nil
	} else if err != cache.ErrCacheMiss {
		log.Printf("Cache error for %s: %v", slug, err)
	}

	changes, err := c.scanner.ScanRepo(ctx, slug, since)
	if err != nil {
		return RepoChanges{}, err
	}

	if err := c.cache.Set(cacheKey, changes, scanCacheTTL); err != nil {
		log.Printf("Failed to cache scan for %s: %v", slug, err)
	}

	return changes, nil
}
