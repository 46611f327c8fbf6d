package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/db"
)

type ProjectRepository struct {
	q *db.Queries
}

func NewProjectRepository(q *db.Queries) *ProjectRepository {
	return &ProjectRepository{q: q}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.q.CreateProject(ctx, db.CreateProjectParams{
		ID:         project.ID.String(),
		Name:       project.Name,
		ApiKeyHash: project.APIKeyHash,
		CreatedAt:  project.CreatedAt,
		UpdatedAt:  project.UpdatedAt,
	})
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	p, err := r.q.GetProjectByID(ctx, projectID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Project, error) {
	p, err := r.q.GetProjectByAPIKeyHash(ctx, apiKeyHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	list, err := r.q.ListProjects(ctx, db.ListProjectsParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, err
	}
	return dbProjectsToDomain(list), nil
}

func (r *ProjectRepository) UpdateAPIKeyHash(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) error {
	n, err := r.q.UpdateProjectAPIKeyHash(ctx, projectID.String(), apiKeyHash)
	if err != nil {
		return err
	}
	if n == 0 {
		return domerrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, projectID domain.ProjectID, at time.Time) error {
	n, err := r.q.SoftDeleteProject(ctx, projectID.String(), at)
	if err != nil {
		return err
	}
	if n == 0 {
		return domerrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) ListDeletedBefore(ctx context.Context, t time.Time) ([]*domain.Project, error) {
	list, err := r.q.ListProjectsDeletedBefore(ctx, t)
	if err != nil {
		return nil, err
	}
	return dbProjectsToDomain(list), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	return r.q.DeleteProject(ctx, projectID.String())
}

func dbProjectToDomain(p db.Project) *domain.Project {
	out := &domain.Project{
		ID:         domain.ProjectID(p.ID),
		Name:       p.Name,
		APIKeyHash: p.ApiKeyHash,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		out.DeletedAt = &t
	}
	return out
}

func dbProjectsToDomain(list []db.Project) []*domain.Project {
	out := make([]*domain.Project, 0, len(list))
	for _, p := range list {
		out = append(out, dbProjectToDomain(p))
	}
	return out
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
