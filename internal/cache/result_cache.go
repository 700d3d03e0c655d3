package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"impactready/internal/model"
)

// ResultCache fronts the results collection; a result is immutable once
// computed, so a cache hit never goes stale.
type ResultCache interface {
	Set(ctx context.Context, result *model.Result) error
	Get(ctx context.Context, runID string) (*model.Result, error)
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *resultCache) key(runID string) string {
	return fmt.Sprintf("run:%s:result", runID)
}

func (c *resultCache) Set(ctx context.Context, result *model.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(result.RunID), data, c.ttl).Err()
}

func (c *resultCache) Get(ctx context.Context, runID string) (*model.Result, error) {
	data, err := c.client.Get(ctx, c.key(runID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
