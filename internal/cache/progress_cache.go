package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"impactready/internal/model"
)

// ProgressCache holds the most recent completion snapshot per run so section
// lists render without recomputing against Mongo.
type ProgressCache interface {
	Set(ctx context.Context, runID string, p *model.Progress) error
	Get(ctx context.Context, runID string) (*model.Progress, error)
	Delete(ctx context.Context, runID string) error
}

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a new progress cache
func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *progressCache) key(runID string) string {
	return fmt.Sprintf("run:%s:progress", runID)
}

func (c *progressCache) Set(ctx context.Context, runID string, p *model.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(runID), data, c.ttl).Err()
}

func (c *progressCache) Get(ctx context.Context, runID string) (*model.Progress, error) {
	data, err := c.client.Get(ctx, c.key(runID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p model.Progress
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *progressCache) Delete(ctx context.Context, runID string) error {
	return c.client.Del(ctx, c.key(runID)).Err()
}
