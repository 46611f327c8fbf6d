package ports

import (
	"context"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

// ProjectCache caches project lookups by API key hash. A miss returns nil, nil.
type ProjectCache interface {
	Get(ctx context.Context, apiKeyHash string) (*domain.Project, error)
	Set(ctx context.Context, project *domain.Project) error
	Invalidate(ctx context.Context, apiKeyHash string) error
}
