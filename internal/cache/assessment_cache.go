package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"venturescope/internal/model"
)

// AssessmentCache handles Redis operations for generated risk assessments
type AssessmentCache interface {
	Set(ctx context.Context, assessment *model.RiskAssessment) error
	Get(ctx context.Context, ideaID string) (*model.RiskAssessment, error)
	Delete(ctx context.Context, ideaID string) error
}

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *assessmentCache) key(ideaID string) string {
	return fmt.Sprintf("idea:%s:assessment", ideaID)
}

func (c *assessmentCache) Set(ctx context.Context, assessment *model.RiskAssessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(assessment.IdeaID), data, c.ttl).Err()
}

func (c *assessmentCache) Get(ctx context.Context, ideaID string) (*model.RiskAssessment, error) {
	data, err := c.client.Get(ctx, c.key(ideaID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var assessment model.RiskAssessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (c *assessmentCache) Delete(ctx context.Context, ideaID string) error {
	return c.client.Del(ctx, c.key(ideaID)).Err()
}
