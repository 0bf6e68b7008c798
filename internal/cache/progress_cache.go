package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache handles Redis operations for completed-stage sets
type ProgressCache interface {
	// GetCompleted returns the cached set and whether there was a hit
	GetCompleted(ctx context.Context, ideaID string) ([]int, bool, error)
	SetCompleted(ctx context.Context, ideaID string, completed []int) error
	Invalidate(ctx context.Context, ideaID string) error
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

func (c *progressCache) key(ideaID string) string {
	return fmt.Sprintf("idea:%s:completed", ideaID)
}

func (c *progressCache) GetCompleted(ctx context.Context, ideaID string) ([]int, bool, error) {
	data, err := c.client.Get(ctx, c.key(ideaID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var completed []int
	if err := json.Unmarshal([]byte(data), &completed); err != nil {
		return nil, false, err
	}
	return completed, true, nil
}

func (c *progressCache) SetCompleted(ctx context.Context, ideaID string, completed []int) error {
	if completed == nil {
		completed = []int{}
	}
	data, err := json.Marshal(completed)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ideaID), data, c.ttl).Err()
}

func (c *progressCache) Invalidate(ctx context.Context, ideaID string) error {
	return c.client.Del(ctx, c.key(ideaID)).Err()
}
