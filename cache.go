package mintpaper

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of non-draft posts with TTL. Scheduled-post
// visibility is evaluated on every read, so a post goes live on time even
// while the cached list is still fresh.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	fetched time.Time
	ttl     time.Duration
	margin  time.Duration
	now     func() time.Time
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store. margin is the
// scheduled-post margin passed to PostFilter.
func NewPostCache(s *Store, ttl, margin time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl, margin: margin, now: time.Now}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.posts, nil
}

func (c *PostCache) visible() ([]BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return VisiblePosts(posts, c.now(), c.margin), nil
}

// ListPosts returns visible posts, newest first, optionally restricted to
// the posts carrying tag (in slug form).
func (c *PostCache) ListPosts(tag string) ([]BlogPost, error) {
	posts, err := c.visible()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	return PostsByTag(posts, tag), nil
}

// ListTags returns the unique tags of visible posts.
func (c *PostCache) ListTags() ([]TagInfo, error) {
	posts, err := c.visible()
	if err != nil {
		return nil, err
	}
	return UniqueTags(posts), nil
}

// GetPost returns a single visible post by slug.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, err := c.visible()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}
