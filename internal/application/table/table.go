package table

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
	"github.com/amirhosseinghanipour/projectdb/internal/domain/tablename"
)

// CreateTableInput names the table and its columns. Every table also gets "id" and "created_at" columns.
type CreateTableInput struct {
	ProjectID domain.ProjectID
	Name      string
	Columns   []domain.Column
}

// CreateTable provisions a project table under its schema key.
type CreateTable struct {
	tables ports.TableRepository
	tasks  ports.TaskEnqueuer
	now    func() time.Time
}

// NewCreateTable builds the use case. tasks may be nil.
func NewCreateTable(tables ports.TableRepository, tasks ports.TaskEnqueuer) *CreateTable {
	return &CreateTable{tables: tables, tasks: tasks, now: time.Now}
}

func (uc *CreateTable) Execute(ctx context.Context, input CreateTableInput) (*domain.Table, error) {
	if _, err := domain.ParseProjectID(input.ProjectID.String()); err != nil {
		return nil, err
	}
	name, err := tablename.Normalize(input.Name)
	if err != nil {
		return nil, err
	}
	cols, err := tablename.NormalizeColumns(input.Columns)
	if err != nil {
		return nil, err
	}
	existing, err := uc.tables.Get(ctx, input.ProjectID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrTableExists
	}
	t := &domain.Table{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		Name:      name,
		SchemaKey: input.ProjectID.SchemaKey(name),
		Columns:   cols,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.tables.Create(ctx, t); err != nil {
		return nil, err
	}
	if uc.tasks != nil {
		_ = uc.tasks.EnqueueWebhook(ctx, ports.AuditEvent{
			Event:     ports.EventTableCreated,
			ProjectID: t.ProjectID.String(),
			Table:     t.Name,
			SchemaKey: t.SchemaKey,
			Success:   true,
		})
	}
	return t, nil
}

// ListTables returns the project's tables ordered by name.
type ListTables struct {
	tables ports.TableRepository
}

func NewListTables(tables ports.TableRepository) *ListTables {
	return &ListTables{tables: tables}
}

func (uc *ListTables) Execute(ctx context.Context, projectID domain.ProjectID) ([]*domain.Table, error) {
	return uc.tables.List(ctx, projectID)
}

// GetTable returns a single table or ErrTableNotFound.
type GetTable struct {
	tables ports.TableRepository
}

func NewGetTable(tables ports.TableRepository) *GetTable {
	return &GetTable{tables: tables}
}

func (uc *GetTable) Execute(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Table, error) {
	name, err := tablename.Normalize(name)
	if err != nil {
		return nil, err
	}
	t, err := uc.tables.Get(ctx, projectID, name)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTableNotFound
	}
	return t, nil
}

// DropTable removes the physical table and its catalog row.
type DropTable struct {
	tables ports.TableRepository
	tasks  ports.TaskEnqueuer
}

// NewDropTable builds the use case. tasks may be nil.
func NewDropTable(tables ports.TableRepository, tasks ports.TaskEnqueuer) *DropTable {
	return &DropTable{tables: tables, tasks: tasks}
}

func (uc *DropTable) Execute(ctx context.Context, projectID domain.ProjectID, name string) error {
	name, err := tablename.Normalize(name)
	if err != nil {
		return err
	}
	t, err := uc.tables.Get(ctx, projectID, name)
	if err != nil {
		return err
	}
	if t == nil {
		return domerrors.ErrTableNotFound
	}
	if err := uc.tables.Drop(ctx, projectID, name); err != nil {
		return err
	}
	if uc.tasks != nil {
		_ = uc.tasks.EnqueueWebhook(ctx, ports.AuditEvent{
			Event:     ports.EventTableDropped,
			ProjectID: projectID.String(),
			Table:     name,
			SchemaKey: t.SchemaKey,
			Success:   true,
		})
	}
	return nil
}
