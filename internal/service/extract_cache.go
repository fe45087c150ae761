package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipe-saver/backend/internal/extraction/urlutil"
)

const extractCacheTTL = 24 * time.Hour

// ExtractCache stores finished extraction responses in Redis keyed by the
// cleaned source URL, so a repeat request inside the window skips the whole
// pipeline and the model call behind it.
type ExtractCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewExtractCache creates a cache with the default 24h TTL.
func NewExtractCache(client *redis.Client) *ExtractCache {
	return &ExtractCache{redis: client, ttl: extractCacheTTL}
}

// Get returns the cached payload for the URL, or nil on a miss.
func (c *ExtractCache) Get(ctx context.Context, url string) ([]byte, error) {
	data, err := c.redis.Get(ctx, c.key(url)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read extract cache: %w", err)
	}
	return data, nil
}

// Set stores the payload for the URL.
func (c *ExtractCache) Set(ctx context.Context, url string, payload []byte) error {
	if err := c.redis.Set(ctx, c.key(url), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write extract cache: %w", err)
	}
	return nil
}

// key normalizes the URL the same way the pipeline does, so share-link
// variants of one video (tracking params, youtu.be) hit the same entry.
func (c *ExtractCache) key(url string) string {
	return fmt.Sprintf("extract:result:%s", urlutil.Preprocess(url))
}
