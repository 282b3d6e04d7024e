package corpus

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/nao1215/wikiracer/internal/model"
)

// DefaultCacheSize is the number of pages kept by a CachedSource.
const DefaultCacheSize = 4096

// CachedSource keeps recently fetched pages in an LRU cache and coalesces
// concurrent fetches of the same page into a single call to the inner source.
//
// Put it below a Recorder, never above: the Recorder must still see every
// logical fetch a search makes, cached or not.
type CachedSource struct {
	inner Source
	cache *lru.Cache[model.PageID, string]
	group singleflight.Group
}

// NewCachedSource wraps inner with a cache holding up to size pages.
func NewCachedSource(inner Source, size int) (*CachedSource, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := lru.New[model.PageID, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &CachedSource{
		inner: inner,
		cache: cache,
	}, nil
}

// Fetch returns the cached page or fetches it from the inner source.
// Failed fetches are not cached.
func (c *CachedSource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	if content, ok := c.cache.Get(id); ok {
		return content, nil
	}

	v, err, _ := c.group.Do(string(id), func() (any, error) {
		content, err := c.inner.Fetch(ctx, id)
		if err != nil {
			return "", err
		}
		c.cache.Add(id, content)
		return content, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil //nolint:forcetypeassert // the group only stores strings
}

// Disallowed returns the inner source's disallowed characters.
func (c *CachedSource) Disallowed() string {
	return c.inner.Disallowed()
}

// Len returns the number of cached pages.
func (c *CachedSource) Len() int {
	return c.cache.Len()
}
