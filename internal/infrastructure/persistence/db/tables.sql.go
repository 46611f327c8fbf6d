package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const tableColumns = `id, project_id, name, schema_key, columns, created_at`

const createProjectTable = `INSERT INTO project_tables (id, project_id, name, schema_key, columns, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

type CreateProjectTableParams struct {
	ID        uuid.UUID
	ProjectID string
	Name      string
	SchemaKey string
	Columns   []byte
	CreatedAt time.Time
}

func (q *Queries) CreateProjectTable(ctx context.Context, arg CreateProjectTableParams) error {
	_, err := q.db.Exec(ctx, createProjectTable, arg.ID, arg.ProjectID, arg.Name, arg.SchemaKey, arg.Columns, arg.CreatedAt)
	return err
}

const getProjectTable = `SELECT ` + tableColumns + ` FROM project_tables WHERE project_id = $1 AND name = $2`

func (q *Queries) GetProjectTable(ctx context.Context, projectID, name string) (ProjectTable, error) {
	return scanProjectTable(q.db.QueryRow(ctx, getProjectTable, projectID, name))
}

const listProjectTables = `SELECT ` + tableColumns + ` FROM project_tables WHERE project_id = $1 ORDER BY name`

func (q *Queries) ListProjectTables(ctx context.Context, projectID string) ([]ProjectTable, error) {
	rows, err := q.db.Query(ctx, listProjectTables, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ProjectTable
	for rows.Next() {
		t, err := scanProjectTable(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const deleteProjectTable = `DELETE FROM project_tables WHERE project_id = $1 AND name = $2`

func (q *Queries) DeleteProjectTable(ctx context.Context, projectID, name string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteProjectTable, projectID, name)
	return tag.RowsAffected(), err
}

func scanProjectTable(row rowScanner) (ProjectTable, error) {
	var t ProjectTable
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.SchemaKey, &t.Columns, &t.CreatedAt)
	return t, err
}
