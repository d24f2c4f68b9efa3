package hdsite

import (
	"sync"
	"time"
)

// BlogCache is an in-memory TTL cache of the full post list. The public
// list endpoint, sitemap and feed read through it; every write to the
// store invalidates it so mutations are visible on the next read.
type BlogCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewBlogCache creates a BlogCache backed by the given Store.
func NewBlogCache(s *Store, ttl time.Duration) *BlogCache {
	return &BlogCache{store: s, ttl: ttl}
}

func (c *BlogCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *BlogCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached post list after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *BlogCache) ensureLoaded() ([]BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListBlogs(LanguageAll)
	if err != nil {
		return nil, err
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// ListBlogs returns posts filtered by language, preserving the store's
// created-at-descending order. LanguageAll returns everything.
func (c *BlogCache) ListBlogs(language string) ([]BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if language == LanguageAll || language == "" {
		return posts, nil
	}
	filtered := []BlogPost{}
	for _, p := range posts {
		if p.Language == language {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListPublished returns only publicly visible posts, for the sitemap and feed.
func (c *BlogCache) ListPublished() ([]BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	published := []BlogPost{}
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}
