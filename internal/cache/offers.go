// Package cache keeps recently read offers in redis, keyed by slug.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"offerboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "offerts:slug:"

// Offers is a redis-backed offer cache.
type Offers struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOffers(client *redis.Client, ttl time.Duration) *Offers {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Offers{client: client, ttl: ttl}
}

// Get returns the cached offer. A miss is reported as (nil, nil).
func (c *Offers) Get(ctx context.Context, slug string) (*domain.Offer, error) {
	raw, err := c.client.Get(ctx, key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", slug, err)
	}
	var o domain.Offer
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", slug, err)
	}
	return &o, nil
}

func (c *Offers) Set(ctx context.Context, o domain.Offer) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", o.Slug, err)
	}
	if err := c.client.Set(ctx, key(o.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", o.Slug, err)
	}
	return nil
}

func (c *Offers) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, key(slug)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", slug, err)
	}
	return nil
}

func key(slug string) string {
	return keyPrefix + slug
}
