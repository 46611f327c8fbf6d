package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

// CachedProjectRepository reads GetByAPIKeyHash through a ProjectCache. Cache errors are logged
// and fall back to the underlying repository.
type CachedProjectRepository struct {
	ports.ProjectRepository
	cache ports.ProjectCache
	log   zerolog.Logger
}

func NewCachedProjectRepository(repo ports.ProjectRepository, cache ports.ProjectCache, log zerolog.Logger) *CachedProjectRepository {
	return &CachedProjectRepository{ProjectRepository: repo, cache: cache, log: log}
}

func (r *CachedProjectRepository) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	p, err := r.cache.Get(ctx, apiKeyHash)
	if err != nil {
		r.log.Warn().Err(err).Msg("project cache get failed")
	}
	if p != nil {
		return p, nil
	}
	p, err = r.ProjectRepository.GetByAPIKeyHash(ctx, apiKeyHash)
	if err != nil || p == nil {
		return p, err
	}
	if err := r.cache.Set(ctx, p); err != nil {
		r.log.Warn().Err(err).Str("project_id", p.ID.String()).Msg("project cache set failed")
	}
	return p, nil
}

// Writes invalidate the entry for the pre-write hash after the backing write succeeds.

func (r *CachedProjectRepository) UpdateAPIKeyHash(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) error {
	old := r.currentHash(ctx, projectID)
	if err := r.ProjectRepository.UpdateAPIKeyHash(ctx, projectID, apiKeyHash); err != nil {
		return err
	}
	r.invalidate(ctx, projectID, old)
	return nil
}

func (r *CachedProjectRepository) SoftDelete(ctx context.Context, projectID domain.ProjectID, at time.Time) error {
	old := r.currentHash(ctx, projectID)
	if err := r.ProjectRepository.SoftDelete(ctx, projectID, at); err != nil {
		return err
	}
	r.invalidate(ctx, projectID, old)
	return nil
}

func (r *CachedProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	old := r.currentHash(ctx, projectID)
	if err := r.ProjectRepository.Delete(ctx, projectID); err != nil {
		return err
	}
	r.invalidate(ctx, projectID, old)
	return nil
}

func (r *CachedProjectRepository) currentHash(ctx context.Context, projectID domain.ProjectID) string {
	p, err := r.ProjectRepository.GetByID(ctx, projectID)
	if err != nil || p == nil {
		return ""
	}
	return p.APIKeyHash
}

func (r *CachedProjectRepository) invalidate(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) {
	if apiKeyHash == "" {
		return
	}
	if err := r.cache.Invalidate(ctx, apiKeyHash); err != nil {
		r.log.Warn().Err(err).Str("project_id", projectID.String()).Msg("project cache invalidate failed")
	}
}

var _ ports.ProjectRepository = (*CachedProjectRepository)(nil)
