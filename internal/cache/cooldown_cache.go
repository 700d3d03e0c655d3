package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownCache tracks the post-submission cooldown per user. The key's Redis
// TTL is the cooldown window itself, so expiry needs no sweeper.
type CooldownCache interface {
	Set(ctx context.Context, userID string, until time.Time) error
	Remaining(ctx context.Context, userID string) (time.Duration, error)
	Clear(ctx context.Context, userID string) error
}

type cooldownCache struct {
	client *redis.Client
}

// NewCooldownCache creates a new cooldown cache
func NewCooldownCache(client *redis.Client) CooldownCache {
	return &cooldownCache{
		client: client,
	}
}

func (c *cooldownCache) key(userID string) string {
	return fmt.Sprintf("user:%s:cooldown", userID)
}

func (c *cooldownCache) Set(ctx context.Context, userID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, c.key(userID), until.Format(time.RFC3339), ttl).Err()
}

// Remaining returns zero when no cooldown is active
func (c *cooldownCache) Remaining(ctx context.Context, userID string) (time.Duration, error) {
	ttl, err := c.client.TTL(ctx, c.key(userID)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		// -2 key missing, -1 no expiry; either way no active cooldown
		return 0, nil
	}
	return ttl, nil
}

func (c *cooldownCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
