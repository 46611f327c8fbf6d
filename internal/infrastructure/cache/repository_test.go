package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/memory"
)

type mapCache struct {
	data   map[string]domain.Project
	gets   int
	getErr error
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]domain.Project)} }

func (c *mapCache) Get(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.data[apiKeyHash]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *mapCache) Set(ctx context.Context, project *domain.Project) error {
	c.data[project.APIKeyHash] = *project
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, apiKeyHash string) error {
	delete(c.data, apiKeyHash)
	return nil
}

func seed(t *testing.T) (*memory.ProjectRepository, *domain.Project) {
	t.Helper()
	repo := memory.NewProjectRepository()
	p := &domain.Project{ID: domain.NewProjectID(), Name: "blog", APIKeyHash: "hash", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), p))
	return repo, p
}

func TestCachedProjectRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo, p := seed(t)
	c := newMapCache()
	cached := NewCachedProjectRepository(repo, c, zerolog.Nop())

	got, err := cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Contains(t, c.data, "hash")

	// served from cache even after the backing row is gone
	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestCachedProjectRepository_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	repo, p := seed(t)
	c := newMapCache()
	cached := NewCachedProjectRepository(repo, c, zerolog.Nop())

	_, err := cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)
	require.NoError(t, cached.UpdateAPIKeyHash(ctx, p.ID, "hash2"))
	assert.NotContains(t, c.data, "hash")

	stale, err := cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)
	assert.Nil(t, stale)

	_, _ = cached.GetByAPIKeyHash(ctx, "hash2")
	require.NoError(t, cached.SoftDelete(ctx, p.ID, time.Now()))
	assert.Empty(t, c.data)
}

// midWriteRepo runs read before delegating each write, the way a concurrent tenant request would.
type midWriteRepo struct {
	*memory.ProjectRepository
	read func()
}

func (r *midWriteRepo) UpdateAPIKeyHash(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) error {
	r.read()
	return r.ProjectRepository.UpdateAPIKeyHash(ctx, projectID, apiKeyHash)
}

func (r *midWriteRepo) SoftDelete(ctx context.Context, projectID domain.ProjectID, at time.Time) error {
	r.read()
	return r.ProjectRepository.SoftDelete(ctx, projectID, at)
}

func TestCachedProjectRepository_ReadDuringWriteDoesNotResurrect(t *testing.T) {
	ctx := context.Background()
	mem, p := seed(t)
	repo := &midWriteRepo{ProjectRepository: mem}
	c := newMapCache()
	cached := NewCachedProjectRepository(repo, c, zerolog.Nop())
	repo.read = func() {
		got, err := cached.GetByAPIKeyHash(ctx, "hash")
		require.NoError(t, err)
		require.NotNil(t, got)
	}

	require.NoError(t, cached.UpdateAPIKeyHash(ctx, p.ID, "hash2"))
	assert.NotContains(t, c.data, "hash")
	stale, err := cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)
	assert.Nil(t, stale, "rotated-away key must not resolve")

	repo.read = func() {
		_, err := cached.GetByAPIKeyHash(ctx, "hash2")
		require.NoError(t, err)
	}
	require.NoError(t, cached.SoftDelete(ctx, p.ID, time.Now()))
	assert.Empty(t, c.data)
	gone, err := cached.GetByAPIKeyHash(ctx, "hash2")
	require.NoError(t, err)
	assert.Nil(t, gone, "deleted project's key must not resolve")
}

func TestCachedProjectRepository_FailedWriteKeepsEntry(t *testing.T) {
	ctx := context.Background()
	repo, _ := seed(t)
	c := newMapCache()
	cached := NewCachedProjectRepository(repo, c, zerolog.Nop())
	_, err := cached.GetByAPIKeyHash(ctx, "hash")
	require.NoError(t, err)

	err = cached.UpdateAPIKeyHash(ctx, "p_000000000000", "other")
	assert.Error(t, err)
	assert.Contains(t, c.data, "hash")
}

func TestCachedProjectRepository_CacheErrorFallsBack(t *testing.T) {
	repo, p := seed(t)
	c := newMapCache()
	c.getErr = errors.New("redis down")
	cached := NewCachedProjectRepository(repo, c, zerolog.Nop())

	got, err := cached.GetByAPIKeyHash(context.Background(), "hash")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestNoopProjectCache(t *testing.T) {
	c := NewNoopProjectCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, &domain.Project{APIKeyHash: "x"}))
	got, err := c.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got)
}
