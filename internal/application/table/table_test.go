package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/memory"
)

type recordingEnqueuer struct {
	events []ports.AuditEvent
}

func (r *recordingEnqueuer) EnqueueWebhook(ctx context.Context, ev ports.AuditEvent) error {
	r.events = append(r.events, ev)
	return nil
}

const pid = domain.ProjectID("p_a1b2c3d4e5f6")

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTableRepository()
	tasks := &recordingEnqueuer{}
	uc := NewCreateTable(repo, tasks)

	tbl, err := uc.Execute(ctx, CreateTableInput{
		ProjectID: pid,
		Name:      " posts ",
		Columns:   []domain.Column{{Name: "title", Type: "TEXT"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "posts", tbl.Name)
	assert.Equal(t, "p_a1b2c3d4e5f6_posts", tbl.SchemaKey)
	assert.Equal(t, []domain.Column{{Name: "title", Type: "text"}}, tbl.Columns)
	require.Len(t, tasks.events, 1)
	assert.Equal(t, ports.EventTableCreated, tasks.events[0].Event)
	assert.Equal(t, "p_a1b2c3d4e5f6_posts", tasks.events[0].SchemaKey)

	_, err = uc.Execute(ctx, CreateTableInput{ProjectID: pid, Name: "posts"})
	assert.ErrorIs(t, err, domerrors.ErrTableExists)

	_, err = uc.Execute(ctx, CreateTableInput{ProjectID: pid, Name: "Bad Name"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidTableName)

	_, err = uc.Execute(ctx, CreateTableInput{ProjectID: pid, Name: "ok", Columns: []domain.Column{{Name: "x", Type: "money"}}})
	assert.ErrorIs(t, err, domerrors.ErrInvalidColumn)

	_, err = uc.Execute(ctx, CreateTableInput{ProjectID: "not-a-project", Name: "posts"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidProjectID)
}

func TestListGetDropTable(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTableRepository()
	tasks := &recordingEnqueuer{}
	create := NewCreateTable(repo, nil)
	for _, name := range []string{"posts", "authors"} {
		_, err := create.Execute(ctx, CreateTableInput{ProjectID: pid, Name: name})
		require.NoError(t, err)
	}

	list, err := NewListTables(repo).Execute(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "authors", list[0].Name)

	got, err := NewGetTable(repo).Execute(ctx, pid, "posts")
	require.NoError(t, err)
	assert.Equal(t, "p_a1b2c3d4e5f6_posts", got.SchemaKey)

	_, err = NewGetTable(repo).Execute(ctx, pid, "missing")
	assert.ErrorIs(t, err, domerrors.ErrTableNotFound)

	drop := NewDropTable(repo, tasks)
	require.NoError(t, drop.Execute(ctx, pid, "posts"))
	assert.ErrorIs(t, drop.Execute(ctx, pid, "posts"), domerrors.ErrTableNotFound)
	require.Len(t, tasks.events, 1)
	assert.Equal(t, ports.EventTableDropped, tasks.events[0].Event)
}
