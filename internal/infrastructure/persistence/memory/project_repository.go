package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

var errDuplicateProject = errors.New("memory: duplicate project id or api key hash")

// ProjectRepository is an in-memory ProjectRepository suitable for single-instance deployment and tests.
type ProjectRepository struct {
	mu   sync.RWMutex
	data map[domain.ProjectID]domain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{data: make(map[domain.ProjectID]domain.Project)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[project.ID]; ok {
		return errDuplicateProject
	}
	for _, p := range r.data {
		if p.APIKeyHash == project.APIKeyHash {
			return errDuplicateProject
		}
	}
	r.data[project.ID] = *project
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[projectID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProjectRepository) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data {
		if p.APIKeyHash == apiKeyHash && !p.Deleted() {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	r.mu.RLock()
	live := make([]*domain.Project, 0, len(r.data))
	for _, p := range r.data {
		if !p.Deleted() {
			p := p
			live = append(live, &p)
		}
	}
	r.mu.RUnlock()
	sortProjects(live, func(p *domain.Project) time.Time { return p.CreatedAt })
	if offset >= len(live) {
		return []*domain.Project{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(live) {
		end = len(live)
	}
	return live[offset:end], nil
}

func (r *ProjectRepository) UpdateAPIKeyHash(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[projectID]
	if !ok || p.Deleted() {
		return domerrors.ErrProjectNotFound
	}
	p.APIKeyHash = apiKeyHash
	p.UpdatedAt = time.Now().UTC()
	r.data[projectID] = p
	return nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, projectID domain.ProjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[projectID]
	if !ok || p.Deleted() {
		return domerrors.ErrProjectNotFound
	}
	p.DeletedAt = &at
	p.UpdatedAt = at
	r.data[projectID] = p
	return nil
}

func (r *ProjectRepository) ListDeletedBefore(ctx context.Context, t time.Time) ([]*domain.Project, error) {
	r.mu.RLock()
	var out []*domain.Project
	for _, p := range r.data {
		if p.Deleted() && p.DeletedAt.Before(t) {
			p := p
			out = append(out, &p)
		}
	}
	r.mu.RUnlock()
	sortProjects(out, func(p *domain.Project) time.Time { return *p.DeletedAt })
	return out, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, projectID)
	return nil
}

func sortProjects(list []*domain.Project, key func(*domain.Project) time.Time) {
	sort.Slice(list, func(i, j int) bool {
		ki, kj := key(list[i]), key(list[j])
		if ki.Equal(kj) {
			return list[i].ID < list[j].ID
		}
		return ki.Before(kj)
	})
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
