package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"estatehub/internal/model"
)

// ListingCache keeps the AVAILABLE feed in Redis. A short-lived dirty
// marker set on every mutation stops readers from repopulating the cache
// with a result that may predate the write.
type ListingCache struct {
	client         *redisv9.Client
	listingTTL     time.Duration
	dirtyMarkerTTL time.Duration
}

func NewListingCache(client *redisv9.Client, listingTTL, dirtyMarkerTTL time.Duration) *ListingCache {
	if listingTTL <= 0 {
		listingTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &ListingCache{
		client:         client,
		listingTTL:     listingTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *ListingCache) GetAvailable(ctx context.Context) ([]model.Property, bool, error) {
	raw, err := c.client.Get(ctx, c.listingKey()).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get listings failed: %w", err)
	}

	var properties []model.Property
	if err := json.Unmarshal([]byte(raw), &properties); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached listings failed: %w", err)
	}
	return properties, true, nil
}

func (c *ListingCache) SetAvailable(ctx context.Context, properties []model.Property) error {
	payload, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("marshal listing cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listingKey(), payload, c.listingTTL).Err(); err != nil {
		return fmt.Errorf("redis set listings failed: %w", err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.listingKey()).Err(); err != nil {
		return fmt.Errorf("redis delete listings failed: %w", err)
	}
	return nil
}

func (c *ListingCache) MarkDirty(ctx context.Context) error {
	if err := c.client.Set(ctx, c.dirtyKey(), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *ListingCache) IsDirty(ctx context.Context) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey()).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *ListingCache) listingKey() string {
	return "property:feed:available"
}

func (c *ListingCache) dirtyKey() string {
	return "property:feed:available:dirty"
}
