package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"impactready/internal/model"
)

// RunCache keeps the active run document hot, plus a pointer from user to
// their current draft run.
type RunCache interface {
	SetRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	DeleteRun(ctx context.Context, runID string) error

	SetActiveRun(ctx context.Context, userID, runID string) error
	GetActiveRun(ctx context.Context, userID string) (string, error)
	ClearActiveRun(ctx context.Context, userID string) error
}

type runCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRunCache creates a new run cache
func NewRunCache(client *redis.Client) RunCache {
	return &runCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *runCache) runKey(runID string) string {
	return fmt.Sprintf("run:%s", runID)
}

func (c *runCache) activeKey(userID string) string {
	return fmt.Sprintf("user:%s:activeRun", userID)
}

func (c *runCache) SetRun(ctx context.Context, run *model.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.runKey(run.ID), data, c.ttl).Err()
}

func (c *runCache) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	data, err := c.client.Get(ctx, c.runKey(runID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var run model.Run
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *runCache) DeleteRun(ctx context.Context, runID string) error {
	return c.client.Del(ctx, c.runKey(runID)).Err()
}

func (c *runCache) SetActiveRun(ctx context.Context, userID, runID string) error {
	return c.client.Set(ctx, c.activeKey(userID), runID, c.ttl).Err()
}

func (c *runCache) GetActiveRun(ctx context.Context, userID string) (string, error) {
	runID, err := c.client.Get(ctx, c.activeKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return runID, nil
}

func (c *runCache) ClearActiveRun(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.activeKey(userID)).Err()
}
