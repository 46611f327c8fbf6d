package retention

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/memory"
)

func TestRunPurgeDeletedProjects(t *testing.T) {
	ctx := context.Background()
	projects := memory.NewProjectRepository()
	tables := memory.NewTableRepository()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	old := &domain.Project{ID: domain.NewProjectID(), Name: "old", APIKeyHash: "h1", CreatedAt: now.AddDate(0, -2, 0)}
	recent := &domain.Project{ID: domain.NewProjectID(), Name: "recent", APIKeyHash: "h2", CreatedAt: now.AddDate(0, -2, 0)}
	live := &domain.Project{ID: domain.NewProjectID(), Name: "live", APIKeyHash: "h3", CreatedAt: now.AddDate(0, -2, 0)}
	for _, p := range []*domain.Project{old, recent, live} {
		require.NoError(t, projects.Create(ctx, p))
		require.NoError(t, tables.Create(ctx, &domain.Table{ProjectID: p.ID, Name: "posts", SchemaKey: p.ID.SchemaKey("posts")}))
	}
	require.NoError(t, projects.SoftDelete(ctx, old.ID, now.AddDate(0, 0, -40)))
	require.NoError(t, projects.SoftDelete(ctx, recent.ID, now.AddDate(0, 0, -5)))

	n, err := runPurge(ctx, projects, tables, nil, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	gone, _ := projects.GetByID(ctx, old.ID)
	assert.Nil(t, gone)
	oldTables, _ := tables.List(ctx, old.ID)
	assert.Empty(t, oldTables)

	kept, _ := projects.GetByID(ctx, recent.ID)
	assert.NotNil(t, kept)
	liveTables, _ := tables.List(ctx, live.ID)
	assert.Len(t, liveTables, 1)
}

func TestRunPurgeDeletedProjects_Disabled(t *testing.T) {
	n, err := RunPurgeDeletedProjects(context.Background(), memory.NewProjectRepository(), memory.NewTableRepository(), nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}
