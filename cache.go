package flatpost

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eringen/flatpost/parser"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

// PostLoader produces the full list of posts, newest first.
type PostLoader interface {
	Load(ctx context.Context) ([]parser.Post, error)
}

// PostCache is an in-memory cache of parsed posts with TTL. A zero TTL
// reloads on every read.
type PostCache struct {
	mu      sync.RWMutex
	posts   []parser.Post
	byName  map[string]int
	fetched time.Time
	ttl     time.Duration
	loader  PostLoader
}

// NewPostCache creates a PostCache backed by the given loader.
func NewPostCache(l PostLoader, ttl time.Duration) *PostCache {
	return &PostCache{loader: l, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return !c.fetched.IsZero() && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.byName = nil
	c.fetched = time.Time{}
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.loader.Load(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]int, len(posts))
	for i, p := range posts {
		byName[p.Name] = i
	}
	c.posts = posts
	c.byName = byName
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]parser.Post, map[string]int, error) {
	c.mu.RLock()
	if c.valid() {
		posts, byName := c.posts, c.byName
		c.mu.RUnlock()
		return posts, byName, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.byName, nil
}

// ListPosts returns all posts, newest first. The slice is shared; callers
// must not modify it.
func (c *PostCache) ListPosts(ctx context.Context) ([]parser.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// GetPost returns a single post by its file name stem.
func (c *PostCache) GetPost(ctx context.Context, name string) (parser.Post, error) {
	posts, byName, err := c.ensureLoaded(ctx)
	if err != nil {
		return parser.Post{}, err
	}
	i, ok := byName[name]
	if !ok {
		return parser.Post{}, ErrNotFound
	}
	return posts[i], nil
}
