package cache

import (
	"context"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

// NoopProjectCache always misses; used when Redis is not configured.
type NoopProjectCache struct{}

func NewNoopProjectCache() *NoopProjectCache {
	return &NoopProjectCache{}
}

func (NoopProjectCache) Get(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	return nil, nil
}

func (NoopProjectCache) Set(ctx context.Context, project *domain.Project) error { return nil }

func (NoopProjectCache) Invalidate(ctx context.Context, apiKeyHash string) error { return nil }

var _ ports.ProjectCache = NoopProjectCache{}
