package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.URLCache = (*URLCache)(nil)

const urlCachePrefix = "media:url:"

// URLCache implements driven.URLCache using Redis. Entries are keyed by
// content ID, so identical diagram source shares one cached URL across
// materials and regenerations.
type URLCache struct {
	client *redis.Client
}

// NewURLCache creates a new Redis-backed URLCache
func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

// Get returns the cached URL for a content ID
func (c *URLCache) Get(ctx context.Context, contentID string) (string, error) {
	url, err := c.client.Get(ctx, urlCachePrefix+contentID).Result()
	if err == redis.Nil {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached url: %w", err)
	}
	return url, nil
}

// Set stores a URL for a content ID
func (c *URLCache) Set(ctx context.Context, contentID, url string, ttl time.Duration) error {
	if err := c.client.Set(ctx, urlCachePrefix+contentID, url, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache url: %w", err)
	}
	return nil
}
