package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

const keyPrefix = "projectdb:project:key:"

// RedisProjectCache stores projects as JSON keyed by API key hash.
type RedisProjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProjectCache returns a cache with the given TTL (default 5 minutes).
func NewRedisProjectCache(client *redis.Client, ttl time.Duration) *RedisProjectCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisProjectCache{client: client, ttl: ttl}
}

func (c *RedisProjectCache) Get(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	b, err := c.client.Get(ctx, keyPrefix+apiKeyHash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p domain.Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisProjectCache) Set(ctx context.Context, project *domain.Project) error {
	b, err := json.Marshal(project)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+project.APIKeyHash, b, c.ttl).Err()
}

func (c *RedisProjectCache) Invalidate(ctx context.Context, apiKeyHash string) error {
	return c.client.Del(ctx, keyPrefix+apiKeyHash).Err()
}

var _ ports.ProjectCache = (*RedisProjectCache)(nil)
