package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper records idempotency keys in Redis so a retried request is applied
// at most once across all instances.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduper creates a deduper using the provided Redis client and TTL.
func NewDeduper(client *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{client: client, ttl: ttl}
}

func (d *Deduper) key(key string) string {
	return keyPrefix + "idem:" + key
}

// Add records the key if it does not already exist. It returns true when the
// key was newly added.
func (d *Deduper) Add(ctx context.Context, key string) (bool, error) {
	return d.client.SetNX(ctx, d.key(key), 1, d.ttl).Result()
}

// Remove deletes a recorded key so the request may be retried.
func (d *Deduper) Remove(ctx context.Context, key string) error {
	return d.client.Del(ctx, d.key(key)).Err()
}
