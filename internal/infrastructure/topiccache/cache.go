// Package topiccache fronts the recent-topics lookup with a small TTL cache
// so open-ended requests do not hit the post store on every generation.
package topiccache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// topicWindow is how far back the avoid-duplicate-topic lookup reaches.
const topicWindow = 24 * time.Hour

const defaultCacheSize = 1024

type cacheEntry struct {
	titles    []string
	expiresAt time.Time
}

// Cache implements generation.TopicSource over the post repository with an
// LRU of per-user entries.
type Cache struct {
	posts post.Repository
	lru   *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func New(posts post.Repository, ttl time.Duration) (*Cache, error) {
	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Cache{
		posts: posts,
		lru:   cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

// RecentTitles returns the titles of the user's posts from the last 24 hours,
// served from cache while the entry is fresh.
func (c *Cache) RecentTitles(ctx context.Context, userID string) ([]string, error) {
	if value, ok := c.lru.Get(userID); ok {
		entry := value.(cacheEntry)
		if c.now().Before(entry.expiresAt) {
			return entry.titles, nil
		}
		c.lru.Remove(userID)
	}

	titles, err := c.posts.RecentTitles(ctx, userID, c.now().Add(-topicWindow))
	if err != nil {
		return nil, err
	}

	c.lru.Add(userID, cacheEntry{titles: titles, expiresAt: c.now().Add(c.ttl)})
	return titles, nil
}

// Invalidate drops a user's cached entry. Called after a commit so the next
// open-ended request sees the just-created post.
func (c *Cache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
