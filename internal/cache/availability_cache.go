package cache

import (
	"context"
	"desafiabrasil/internal/model"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache holds the catalog availability listing for a short time
// so the exam list does not count the question bank on every request
type AvailabilityCache interface {
	Set(ctx context.Context, items []model.TemplateAvailability) error
	Get(ctx context.Context) ([]model.TemplateAvailability, error)
	Invalidate(ctx context.Context) error
}

type availabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache creates a new availability cache
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) AvailabilityCache {
	return &availabilityCache{
		client: client,
		ttl:    ttl,
	}
}

const availabilityKey = "exams:availability"

func (c *availabilityCache) Set(ctx context.Context, items []model.TemplateAvailability) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey, data, c.ttl).Err()
}

func (c *availabilityCache) Get(ctx context.Context) ([]model.TemplateAvailability, error) {
	data, err := c.client.Get(ctx, availabilityKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []model.TemplateAvailability
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *availabilityCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, availabilityKey).Err()
}
