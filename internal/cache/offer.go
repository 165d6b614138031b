package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// offerKeyPrefix namespaces cached offer destinations by slug.
const offerKeyPrefix = "offer:"

// ErrCacheMiss is returned when a slug has no cached destination.
var ErrCacheMiss = errors.New("cache miss")

// GetOfferURL retrieves the destination URL for an active offer slug.
// Returns ErrCacheMiss if the slug is not cached.
func (c *Cache) GetOfferURL(ctx context.Context, slug string) (string, error) {
	url, err := c.client.Get(ctx, offerKeyPrefix+slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return url, nil
}

// SetOfferURL caches the destination URL for an active offer slug.
func (c *Cache) SetOfferURL(ctx context.Context, slug, url string, ttl time.Duration) error {
	if err := c.client.Set(ctx, offerKeyPrefix+slug, url, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache offer: %w", err)
	}
	return nil
}

// DeleteOffer drops the cached destination for a slug. Called after admin
// offer creation so a newly seeded offer is resolvable immediately.
func (c *Cache) DeleteOffer(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, offerKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to delete offer from cache: %w", err)
	}
	return nil
}
