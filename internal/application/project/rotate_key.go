package project

import (
	"context"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

// RotateProjectKeyInput is the project ID to rotate.
type RotateProjectKeyInput struct {
	ProjectID domain.ProjectID
}

// RotateProjectKeyResult returns the new plain API key (only time it is visible).
type RotateProjectKeyResult struct {
	APIKey string
}

// RotateProjectKey generates a new API key for the project and updates storage.
type RotateProjectKey struct {
	projectRepo ports.ProjectRepository
	tasks       ports.TaskEnqueuer
	hashKey     func(string) string
}

// NewRotateProjectKey builds the use case. tasks may be nil.
func NewRotateProjectKey(projectRepo ports.ProjectRepository, tasks ports.TaskEnqueuer, hashKey func(string) string) *RotateProjectKey {
	if hashKey == nil {
		hashKey = sha256Hex
	}
	return &RotateProjectKey{projectRepo: projectRepo, tasks: tasks, hashKey: hashKey}
}

// Execute rotates the key and returns the new plain key.
func (uc *RotateProjectKey) Execute(ctx context.Context, input RotateProjectKeyInput) (*RotateProjectKeyResult, error) {
	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.Deleted() {
		return nil, domerrors.ErrProjectNotFound
	}
	plainKey, err := generateAPIKey()
	if err != nil {
		return nil, err
	}
	if err := uc.projectRepo.UpdateAPIKeyHash(ctx, input.ProjectID, uc.hashKey(plainKey)); err != nil {
		return nil, err
	}
	notify(ctx, uc.tasks, ports.AuditEvent{Event: ports.EventProjectKeyRotated, ProjectID: project.ID.String(), Success: true})
	return &RotateProjectKeyResult{APIKey: plainKey}, nil
}
