package ports

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

// ProjectRepository defines persistence for projects (tenants).
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Project, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Project, error)
	UpdateAPIKeyHash(ctx context.Context, projectID domain.ProjectID, apiKeyHash string) error
	SoftDelete(ctx context.Context, projectID domain.ProjectID, at time.Time) error
	// ListDeletedBefore returns soft-deleted projects whose DeletedAt is before t.
	ListDeletedBefore(ctx context.Context, t time.Time) ([]*domain.Project, error)
	Delete(ctx context.Context, projectID domain.ProjectID) error
}

// TableRepository manages project tables: the physical table named by its schema key plus its catalog row.
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	Get(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Table, error)
	List(ctx context.Context, projectID domain.ProjectID) ([]*domain.Table, error)
	Drop(ctx context.Context, projectID domain.ProjectID, name string) error
}
