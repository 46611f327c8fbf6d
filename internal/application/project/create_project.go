package project

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
)

// CreateProjectInput is the project name.
type CreateProjectInput struct {
	Name string
}

// CreateProjectResult returns the created project and the plain API key (only time it is visible).
type CreateProjectResult struct {
	Project *domain.Project
	APIKey  string
}

// CreateProject creates a project with a generated id and API key; returns the plain key once.
type CreateProject struct {
	projectRepo ports.ProjectRepository
	tasks       ports.TaskEnqueuer
	hashKey     func(string) string
	newID       func() domain.ProjectID
	now         func() time.Time
}

// NewCreateProject builds the use case. tasks may be nil.
func NewCreateProject(projectRepo ports.ProjectRepository, tasks ports.TaskEnqueuer, hashKey func(string) string) *CreateProject {
	if hashKey == nil {
		hashKey = sha256Hex
	}
	return &CreateProject{
		projectRepo: projectRepo,
		tasks:       tasks,
		hashKey:     hashKey,
		newID:       domain.NewProjectID,
		now:         time.Now,
	}
}

// WithIDFunc overrides project id generation (tests).
func (uc *CreateProject) WithIDFunc(fn func() domain.ProjectID) *CreateProject {
	uc.newID = fn
	return uc
}

// Execute creates the project and returns it with the plain API key.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	now := uc.now().UTC()
	plainKey, err := generateAPIKey()
	if err != nil {
		return nil, err
	}
	project := &domain.Project{
		ID:         uc.newID(),
		Name:       input.Name,
		APIKeyHash: uc.hashKey(plainKey),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	notify(ctx, uc.tasks, ports.AuditEvent{Event: ports.EventProjectCreated, ProjectID: project.ID.String(), Success: true})
	return &CreateProjectResult{Project: project, APIKey: plainKey}, nil
}

func generateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "pdb_" + hex.EncodeToString(b), nil
}

func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// notify enqueues a webhook; delivery is best-effort and never fails the use case.
func notify(ctx context.Context, tasks ports.TaskEnqueuer, ev ports.AuditEvent) {
	if tasks == nil {
		return
	}
	_ = tasks.EnqueueWebhook(ctx, ev)
}
