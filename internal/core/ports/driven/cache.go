package driven

import (
	"context"
	"time"
)

// URLCache remembers resolved media URLs by content ID so identical diagram
// source never hits the renderer or storage twice.
type URLCache interface {
	// Get returns the cached URL for a content ID, or domain.ErrNotFound
	Get(ctx context.Context, contentID string) (string, error)

	// Set stores a URL for a content ID with a TTL (0 means no expiry)
	Set(ctx context.Context, contentID, url string, ttl time.Duration) error
}
