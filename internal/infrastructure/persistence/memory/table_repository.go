package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

// TableRepository keeps table definitions keyed by schema key. No physical storage is created.
type TableRepository struct {
	mu   sync.RWMutex
	data map[string]domain.Table
}

func NewTableRepository() *TableRepository {
	return &TableRepository{data: make(map[string]domain.Table)}
}

func (r *TableRepository) Create(ctx context.Context, table *domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[table.SchemaKey]; ok {
		return domerrors.ErrTableExists
	}
	t := *table
	t.Columns = append([]domain.Column(nil), table.Columns...)
	r.data[table.SchemaKey] = t
	return nil
}

func (r *TableRepository) Get(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[projectID.SchemaKey(name)]
	if !ok || t.ProjectID != projectID || t.Name != name {
		return nil, nil
	}
	return &t, nil
}

func (r *TableRepository) List(ctx context.Context, projectID domain.ProjectID) ([]*domain.Table, error) {
	r.mu.RLock()
	out := make([]*domain.Table, 0)
	for _, t := range r.data {
		if t.ProjectID == projectID {
			t := t
			out = append(out, &t)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TableRepository) Drop(ctx context.Context, projectID domain.ProjectID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := projectID.SchemaKey(name)
	t, ok := r.data[key]
	if !ok || t.ProjectID != projectID {
		return domerrors.ErrTableNotFound
	}
	delete(r.data, key)
	return nil
}

var _ ports.TableRepository = (*TableRepository)(nil)
