package project

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

// Default and maximum page sizes for ListProjects.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// GetProject loads a live (not soft-deleted) project.
type GetProject struct {
	projectRepo ports.ProjectRepository
}

func NewGetProject(projectRepo ports.ProjectRepository) *GetProject {
	return &GetProject{projectRepo: projectRepo}
}

func (uc *GetProject) Execute(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.Deleted() {
		return nil, domerrors.ErrProjectNotFound
	}
	return project, nil
}

// ListProjects pages through live projects ordered by creation time.
type ListProjects struct {
	projectRepo ports.ProjectRepository
}

func NewListProjects(projectRepo ports.ProjectRepository) *ListProjects {
	return &ListProjects{projectRepo: projectRepo}
}

// Execute clamps limit to (0, MaxListLimit] and offset to >= 0.
func (uc *ListProjects) Execute(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.projectRepo.List(ctx, limit, offset)
}

// DeleteProject soft-deletes a project. Its tables are dropped later by retention.
type DeleteProject struct {
	projectRepo ports.ProjectRepository
	tasks       ports.TaskEnqueuer
	now         func() time.Time
}

// NewDeleteProject builds the use case. tasks may be nil.
func NewDeleteProject(projectRepo ports.ProjectRepository, tasks ports.TaskEnqueuer) *DeleteProject {
	return &DeleteProject{projectRepo: projectRepo, tasks: tasks, now: time.Now}
}

func (uc *DeleteProject) Execute(ctx context.Context, projectID domain.ProjectID) error {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil || project.Deleted() {
		return domerrors.ErrProjectNotFound
	}
	if err := uc.projectRepo.SoftDelete(ctx, projectID, uc.now().UTC()); err != nil {
		return err
	}
	notify(ctx, uc.tasks, ports.AuditEvent{Event: ports.EventProjectDeleted, ProjectID: projectID.String(), Success: true})
	return nil
}
